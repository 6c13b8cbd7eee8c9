package gamestate

// Fixed storage keys for the two persisted JSON blobs.
const (
	KeyGameState = "game_state"
	KeyPetAges   = "pet_ages"
)

// Persister stores opaque JSON payloads under fixed string keys. Load reports
// ok=false when nothing is stored under the key. Save failures never
// interrupt an in-memory commit: the store logs them and moves on.
type Persister interface {
	Load(key string) (payload []byte, ok bool, err error)
	Save(key string, payload []byte) error
}
