package gamestate

type Mood string

const (
	MoodBeaming   Mood = "beaming"
	MoodContent   Mood = "content"
	MoodGrumpy    Mood = "grumpy"
	MoodMiserable Mood = "miserable"
	MoodDesperate Mood = "desperate"
)

// MoodFor derives the pet's mood from the average of its need gauges. Purely
// a view: the persisted state never stores it.
func MoodFor(needs map[Need]int) Mood {
	if len(needs) == 0 {
		return MoodContent
	}
	sum := 0
	for _, v := range needs {
		sum += v
	}
	avg := sum / len(needs)

	switch {
	case avg >= 80:
		return MoodBeaming
	case avg >= 55:
		return MoodContent
	case avg >= 30:
		return MoodGrumpy
	case avg > 10:
		return MoodMiserable
	default:
		return MoodDesperate
	}
}
