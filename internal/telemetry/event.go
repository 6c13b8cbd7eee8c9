package telemetry

import "time"

type EventType string

const (
	EventStateCommitted    EventType = "state_committed"
	EventDayAdvanced       EventType = "day_advanced"
	EventPetSelected       EventType = "pet_selected"
	EventPetPurchased      EventType = "pet_purchased"
	EventAccessoryAdded    EventType = "accessory_added"
	EventAccessoryEquipped EventType = "accessory_equipped"
	EventTransactionAdded  EventType = "transaction_added"
	EventMoneyChanged      EventType = "money_changed"
	EventDecayTick         EventType = "decay_tick"
	EventCycleReward       EventType = "cycle_reward"
)

type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
