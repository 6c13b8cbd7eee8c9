package telemetry

import (
	"log"
	"sync"

	"pennypet/internal/gamestate"
)

// Recorder bridges the state store's subscription bus into the event log.
// It keeps the previous committed state and derives domain events from the
// diff, so the store itself stays free of telemetry concerns.
type Recorder struct {
	repo   Repository
	logger *log.Logger

	mu   sync.Mutex
	prev gamestate.GameState
}

func NewRecorder(repo Repository, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{repo: repo, logger: logger}
}

// Attach subscribes the recorder to the store and returns the unsubscribe
// function. The observer runs inside the store's commit, so it must stay
// quick and must never call back into the store.
func (rec *Recorder) Attach(store *gamestate.Store) func() {
	rec.mu.Lock()
	rec.prev = store.GetState()
	rec.mu.Unlock()
	return store.Subscribe(rec.observe)
}

func (rec *Recorder) observe(next gamestate.GameState) {
	rec.mu.Lock()
	prev := rec.prev
	rec.prev = next
	rec.mu.Unlock()

	rec.record(EventStateCommitted, EventMetadata{
		"days_played": next.DaysPlayed,
		"money":       next.Money,
		"mood":        string(gamestate.MoodFor(next.Needs)),
	})

	if next.DaysPlayed > prev.DaysPlayed {
		rec.record(EventDayAdvanced, EventMetadata{
			"days_played": next.DaysPlayed,
			"animal_id":   next.AnimalID,
		})
	}
	if next.AnimalID != prev.AnimalID {
		rec.record(EventPetSelected, EventMetadata{"animal_id": next.AnimalID})
	}
	for id, owned := range next.OwnedPets {
		if owned && !prev.OwnedPets[id] {
			rec.record(EventPetPurchased, EventMetadata{"pet_id": id})
		}
	}
	for id, n := range next.OwnedAccessories {
		if d := n - prev.OwnedAccessories[id]; d > 0 {
			rec.record(EventAccessoryAdded, EventMetadata{"accessory_id": id, "count": d})
		}
	}
	for id, on := range next.EquippedAccessories {
		if on != prev.EquippedAccessories[id] {
			rec.record(EventAccessoryEquipped, EventMetadata{"accessory_id": id, "equipped": on})
		}
	}
	if len(next.Transactions) > 0 {
		head := next.Transactions[0]
		if len(prev.Transactions) == 0 || head.ID != prev.Transactions[0].ID {
			rec.record(EventTransactionAdded, EventMetadata{
				"type":     head.Type,
				"amount":   head.Amount,
				"category": head.Category,
			})
		}
	}
	if next.Money != prev.Money {
		rec.record(EventMoneyChanged, EventMetadata{
			"money": next.Money,
			"delta": next.Money - prev.Money,
		})
	}
}

func (rec *Recorder) record(t EventType, md EventMetadata) {
	if rec.repo == nil {
		return
	}
	if err := rec.repo.RecordEvent(t, md); err != nil {
		rec.logger.Printf("record %s event failed: %v", t, err)
	}
}
