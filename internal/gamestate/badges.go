package gamestate

const (
	BadgeAccessory1 = "accessory_1"
	BadgeAccessory2 = "accessory_2"
	BadgeAccessory4 = "accessory_4"
	BadgeDays5      = "days_5"
	BadgeDays10     = "days_10"
	BadgeDays15     = "days_15"
	BadgeDays25     = "days_25"
	BadgeDays50     = "days_50"
	BadgeDays100    = "days_100"
)

// Inclusive thresholds: accessory badges count total accessories owned across
// every kind, day badges compare against daysPlayed.
var accessoryBadgeThresholds = map[string]int{
	BadgeAccessory1: 1,
	BadgeAccessory2: 2,
	BadgeAccessory4: 4,
}

var dayBadgeThresholds = map[string]int{
	BadgeDays5:   5,
	BadgeDays10:  10,
	BadgeDays15:  15,
	BadgeDays25:  25,
	BadgeDays50:  50,
	BadgeDays100: 100,
}

// ComputeBadges derives every badge flag from owned-accessory totals and the
// day counter. Commits overwrite whatever badge values a candidate carried
// with this result, so badges can never drift from the state they derive from.
func ComputeBadges(ownedAccessories map[string]int, daysPlayed int) map[string]bool {
	total := 0
	for _, n := range ownedAccessories {
		if n > 0 {
			total += n
		}
	}
	out := make(map[string]bool, len(accessoryBadgeThresholds)+len(dayBadgeThresholds))
	for id, min := range accessoryBadgeThresholds {
		out[id] = total >= min
	}
	for id, min := range dayBadgeThresholds {
		out[id] = daysPlayed >= min
	}
	return out
}

func emptyBadges() map[string]bool {
	out := make(map[string]bool, len(accessoryBadgeThresholds)+len(dayBadgeThresholds))
	for id := range accessoryBadgeThresholds {
		out[id] = false
	}
	for id := range dayBadgeThresholds {
		out[id] = false
	}
	return out
}
