package gamestate

import "time"

// Need identifies one care gauge on the active pet.
type Need string

const (
	NeedHunger Need = "hunger"
	NeedThirst Need = "thirst"
	NeedHealth Need = "health"
	NeedFun    Need = "fun"
	NeedSleep  Need = "sleep"
)

const (
	NeedMin = 0
	NeedMax = 100
)

const (
	PetDog    = "dog"
	PetCat    = "cat"
	PetRabbit = "rabbit"
	PetDragon = "dragon"
)

const (
	AccessoryCollar  = "collar"
	AccessoryBow     = "bow"
	AccessoryHat     = "hat"
	AccessoryGlasses = "glasses"
)

const (
	TxnIncome  = "income"
	TxnExpense = "expense"
)

// TransactionCap bounds the ledger: the newest entries win, older ones are
// silently dropped.
const TransactionCap = 250

const (
	defaultPet         = PetDog
	defaultNeedValue   = 50
	defaultMoney       = 100
	defaultTxnCategory = "general"
)

// Transaction is an append-only ledger entry. Entries are never edited or
// deleted once committed, only aged out past TransactionCap.
type Transaction struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Type     string    `json:"type"`
	Amount   int       `json:"amount"`
	Category string    `json:"category"`
	Note     string    `json:"note,omitempty"`
}

// GameState is the full persisted save. Badges are derived on every commit
// and are never directly settable; Transactions are ordered newest-first.
type GameState struct {
	Needs               map[Need]int    `json:"needs"`
	Money               int             `json:"money"`
	AnimalID            string          `json:"animalId"`
	OwnedPets           map[string]bool `json:"ownedPets"`
	OwnedAccessories    map[string]int  `json:"ownedAccessories"`
	EquippedAccessories map[string]bool `json:"equippedAccessories"`
	Badges              map[string]bool `json:"badges"`
	DaysPlayed          int             `json:"daysPlayed"`
	Transactions        []Transaction   `json:"transactions"`
}

// PetAges tracks age-in-days per pet, persisted separately from GameState.
type PetAges map[string]int

// DefaultGauges returns the need set whose simultaneous saturation completes
// a day.
func DefaultGauges() []Need {
	return []Need{NeedHunger, NeedThirst, NeedHealth, NeedFun, NeedSleep}
}

func defaultStateForGauges(gauges []Need) GameState {
	needs := make(map[Need]int, len(gauges))
	for _, g := range gauges {
		needs[g] = defaultNeedValue
	}
	return GameState{
		Needs:    needs,
		Money:    defaultMoney,
		AnimalID: defaultPet,
		OwnedPets: map[string]bool{
			PetDog:    true,
			PetCat:    false,
			PetRabbit: false,
			PetDragon: false,
		},
		OwnedAccessories: map[string]int{
			AccessoryCollar:  0,
			AccessoryBow:     0,
			AccessoryHat:     0,
			AccessoryGlasses: 0,
		},
		EquippedAccessories: map[string]bool{
			AccessoryCollar:  false,
			AccessoryBow:     false,
			AccessoryHat:     false,
			AccessoryGlasses: false,
		},
		Badges:       emptyBadges(),
		DaysPlayed:   0,
		Transactions: []Transaction{},
	}
}

func defaultGameState() GameState {
	return defaultStateForGauges(DefaultGauges())
}

func cloneNeeds(src map[Need]int) map[Need]int {
	out := make(map[Need]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneMapInt(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneMapBool(src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneGameState(src GameState) GameState {
	return GameState{
		Needs:               cloneNeeds(src.Needs),
		Money:               src.Money,
		AnimalID:            src.AnimalID,
		OwnedPets:           cloneMapBool(src.OwnedPets),
		OwnedAccessories:    cloneMapInt(src.OwnedAccessories),
		EquippedAccessories: cloneMapBool(src.EquippedAccessories),
		Badges:              cloneMapBool(src.Badges),
		DaysPlayed:          src.DaysPlayed,
		Transactions:        append([]Transaction(nil), src.Transactions...),
	}
}

func clonePetAges(src PetAges) PetAges {
	out := make(PetAges, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
