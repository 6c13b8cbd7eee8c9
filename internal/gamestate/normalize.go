package gamestate

import (
	"encoding/json"
	"math"
)

// Normalize reconciles a possibly partial candidate against the fixed default
// state: gauge values clamp to [NeedMin, NeedMax], map fields shallow-merge
// over defaults (unknown candidate keys are kept), counters floor at zero and
// the transaction ledger truncates to TransactionCap. Pure and idempotent.
func Normalize(s GameState) GameState {
	return normalizeForGauges(s, DefaultGauges())
}

func normalizeForGauges(s GameState, gauges []Need) GameState {
	out := defaultStateForGauges(gauges)

	for _, g := range gauges {
		if v, ok := s.Needs[g]; ok {
			out.Needs[g] = clampNeed(v)
		}
	}

	out.Money = s.Money
	if out.Money < 0 {
		out.Money = 0
	}
	out.DaysPlayed = s.DaysPlayed
	if out.DaysPlayed < 0 {
		out.DaysPlayed = 0
	}
	if s.AnimalID != "" {
		out.AnimalID = s.AnimalID
	}

	for k, v := range s.OwnedPets {
		out.OwnedPets[k] = v
	}
	for k, v := range s.OwnedAccessories {
		if v < 0 {
			v = 0
		}
		out.OwnedAccessories[k] = v
	}
	for k, v := range s.EquippedAccessories {
		out.EquippedAccessories[k] = v
	}
	for k, v := range s.Badges {
		out.Badges[k] = v
	}

	out.Transactions = out.Transactions[:0]
	for _, t := range s.Transactions {
		if t.Amount < 0 {
			t.Amount = 0
		}
		out.Transactions = append(out.Transactions, t)
	}
	if len(out.Transactions) > TransactionCap {
		out.Transactions = out.Transactions[:TransactionCap]
	}

	return out
}

func clampNeed(v int) int {
	if v < NeedMin {
		return NeedMin
	}
	if v > NeedMax {
		return NeedMax
	}
	return v
}

// savedGameState is the tolerant decode shape for persisted saves. Numeric
// fields ride as floats so fractional values written by older clients round
// instead of failing, and pointers distinguish absent fields from zeroes.
type savedGameState struct {
	Needs               map[Need]float64 `json:"needs"`
	Money               *float64         `json:"money"`
	AnimalID            *string          `json:"animalId"`
	OwnedPets           map[string]bool  `json:"ownedPets"`
	OwnedAccessories    map[string]int   `json:"ownedAccessories"`
	EquippedAccessories map[string]bool  `json:"equippedAccessories"`
	Badges              map[string]bool  `json:"badges"`
	DaysPlayed          *float64         `json:"daysPlayed"`
	Transactions        []Transaction    `json:"transactions"`
}

// decodeGameState parses a persisted payload, falling back to the default
// state when the payload is not a JSON object of roughly the right shape.
func decodeGameState(payload []byte, gauges []Need) GameState {
	def := defaultStateForGauges(gauges)

	var saved savedGameState
	if err := json.Unmarshal(payload, &saved); err != nil {
		return def
	}

	candidate := GameState{
		Money:               def.Money,
		AnimalID:            def.AnimalID,
		DaysPlayed:          def.DaysPlayed,
		OwnedPets:           saved.OwnedPets,
		OwnedAccessories:    saved.OwnedAccessories,
		EquippedAccessories: saved.EquippedAccessories,
		Badges:              saved.Badges,
		Transactions:        saved.Transactions,
	}
	if len(saved.Needs) > 0 {
		candidate.Needs = make(map[Need]int, len(saved.Needs))
		for k, v := range saved.Needs {
			candidate.Needs[k] = roundToInt(v)
		}
	}
	if saved.Money != nil {
		candidate.Money = roundToInt(*saved.Money)
	}
	if saved.AnimalID != nil && *saved.AnimalID != "" {
		candidate.AnimalID = *saved.AnimalID
	}
	if saved.DaysPlayed != nil {
		candidate.DaysPlayed = roundToInt(*saved.DaysPlayed)
	}

	return normalizeForGauges(candidate, gauges)
}

func decodePetAges(payload []byte) PetAges {
	var saved map[string]float64
	if err := json.Unmarshal(payload, &saved); err != nil {
		return PetAges{}
	}
	out := make(PetAges, len(saved))
	for k, v := range saved {
		age := roundToInt(v)
		if age < 0 {
			age = 0
		}
		out[k] = age
	}
	return out
}

func roundToInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
