package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period            string            `json:"period"`
	EventCounts       map[EventType]int `json:"event_counts"`
	Commits           int               `json:"commits"`
	DaysAdvanced      int               `json:"days_advanced"`
	CoinsEarned       int               `json:"coins_earned"`
	CoinsSpent        int               `json:"coins_spent"`
	PurchasesByPet    map[string]int    `json:"purchases_by_pet"`
	AccessoriesByKind map[string]int    `json:"accessories_by_kind"`
	DecayTicks        int               `json:"decay_ticks"`
	CycleRewards      int               `json:"cycle_rewards"`
}

// CalculateStats computes pacing stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:            since.Format("2006-01-02"),
		EventCounts:       make(map[EventType]int),
		PurchasesByPet:    make(map[string]int),
		AccessoriesByKind: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventStateCommitted:
			stats.Commits++
		case EventDayAdvanced:
			stats.DaysAdvanced++
		case EventDecayTick:
			stats.DecayTicks++
		case EventCycleReward:
			stats.CycleRewards++
		case EventPetPurchased:
			if petID, ok := metadata["pet_id"].(string); ok {
				stats.PurchasesByPet[petID]++
			}
		case EventAccessoryAdded:
			if id, ok := metadata["accessory_id"].(string); ok {
				count := 1
				if n, ok := metadata["count"].(float64); ok && n > 0 {
					count = int(n)
				}
				stats.AccessoriesByKind[id] += count
			}
		case EventTransactionAdded:
			amount := 0
			if n, ok := metadata["amount"].(float64); ok {
				amount = int(n)
			}
			if kind, ok := metadata["type"].(string); ok {
				switch kind {
				case "income":
					stats.CoinsEarned += amount
				case "expense":
					stats.CoinsSpent += amount
				}
			}
		}
	}

	return stats, nil
}
