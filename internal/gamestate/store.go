package gamestate

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Listener receives a copy of the new state after every committed mutation.
// Listeners run synchronously on the committing goroutine, in registration
// order, and must not call back into the store's mutators or unsubscribe
// functions from inside the callback.
type Listener func(GameState)

type Options struct {
	// Persister backs the two save blobs. Nil keeps the store memory-only.
	Persister Persister
	Logger    *log.Logger
	Now       func() time.Time
	// Gauges names the needs whose simultaneous saturation completes a day.
	// Empty means DefaultGauges.
	Gauges []Need
}

// Store owns the authoritative GameState and the auxiliary pet-age map.
// All mutation goes through named mutators; every mutator funnels through one
// commit that normalizes, derives badges, persists best-effort and notifies
// subscribers. A store-wide mutex serializes mutators end to end, so
// notification for one commit always finishes before the next mutator runs.
type Store struct {
	mu     sync.Mutex
	state  GameState
	ages   PetAges
	p      Persister
	logger *log.Logger
	now    func() time.Time
	gauges []Need

	subs   []subscription
	nextID int
}

type subscription struct {
	id int
	fn Listener
}

func New(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Gauges) == 0 {
		opts.Gauges = DefaultGauges()
	}

	s := &Store{
		p:      opts.Persister,
		logger: opts.Logger,
		now:    opts.Now,
		gauges: append([]Need(nil), opts.Gauges...),
	}
	s.state = s.loadState()
	s.state.Badges = ComputeBadges(s.state.OwnedAccessories, s.state.DaysPlayed)
	s.ages = s.loadAges()
	return s
}

func (s *Store) loadState() GameState {
	if s.p == nil {
		return defaultStateForGauges(s.gauges)
	}
	payload, ok, err := s.p.Load(KeyGameState)
	if err != nil {
		s.logger.Printf("load game state failed: %v", err)
		return defaultStateForGauges(s.gauges)
	}
	if !ok {
		return defaultStateForGauges(s.gauges)
	}
	return decodeGameState(payload, s.gauges)
}

func (s *Store) loadAges() PetAges {
	if s.p == nil {
		return PetAges{}
	}
	payload, ok, err := s.p.Load(KeyPetAges)
	if err != nil {
		s.logger.Printf("load pet ages failed: %v", err)
		return PetAges{}
	}
	if !ok {
		return PetAges{}
	}
	return decodePetAges(payload)
}

// GetState returns a copy of the current in-memory state. It never fails:
// a store that found no (or invalid) persisted data holds the default state.
func (s *Store) GetState() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGameState(s.state)
}

// Ages returns a copy of the pet age map.
func (s *Store) Ages() PetAges {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePetAges(s.ages)
}

// Gauges returns the configured saturation gauge set.
func (s *Store) Gauges() []Need {
	return append([]Need(nil), s.gauges...)
}

// Subscribe registers fn for synchronous notification after each commit and
// returns the function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// commitLocked is the single choke point for every mutation: normalize the
// candidate, recompute derived badges, swap the canonical state, persist
// best-effort, notify subscribers in registration order.
func (s *Store) commitLocked(candidate GameState) {
	next := normalizeForGauges(candidate, s.gauges)
	next.Badges = ComputeBadges(next.OwnedAccessories, next.DaysPlayed)
	s.state = next
	s.persistStateLocked()
	for _, sub := range s.subs {
		sub.fn(cloneGameState(s.state))
	}
}

func (s *Store) persistStateLocked() {
	if s.p == nil {
		return
	}
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		s.logger.Printf("encode game state failed: %v", err)
		return
	}
	if err := s.p.Save(KeyGameState, b); err != nil {
		s.logger.Printf("persist game state failed: %v", err)
	}
}

func (s *Store) persistAgesLocked() {
	if s.p == nil {
		return
	}
	b, err := json.MarshalIndent(s.ages, "", "  ")
	if err != nil {
		s.logger.Printf("encode pet ages failed: %v", err)
		return
	}
	if err := s.p.Save(KeyPetAges, b); err != nil {
		s.logger.Printf("persist pet ages failed: %v", err)
	}
}

// SetSelectedPet switches the active pet. Ownership is the caller's check;
// the store accepts any non-empty id.
func (s *Store) SetSelectedPet(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneGameState(s.state)
	next.AnimalID = id
	s.commitLocked(next)
}

// SetEquippedAccessory toggles an accessory. Equipping anything with an owned
// count of zero is a silent no-op; unequipping always succeeds.
func (s *Store) SetEquippedAccessory(id string, equipped bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if equipped && s.state.OwnedAccessories[id] <= 0 {
		return
	}
	next := cloneGameState(s.state)
	next.EquippedAccessories[id] = equipped
	s.commitLocked(next)
}

// AddTransaction prepends a ledger entry, filling in id, timestamp and type
// when the caller left them empty. Amounts floor at zero.
func (s *Store) AddTransaction(entry Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addTransactionLocked(entry)
}

func (s *Store) addTransactionLocked(entry Transaction) {
	entry = s.fillTransaction(entry)
	next := cloneGameState(s.state)
	next.Transactions = append([]Transaction{entry}, next.Transactions...)
	s.commitLocked(next)
}

func (s *Store) fillTransaction(entry Transaction) Transaction {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = s.now().UTC()
	}
	if entry.Type != TxnExpense {
		entry.Type = TxnIncome
	}
	if entry.Amount < 0 {
		entry.Amount = 0
	}
	if strings.TrimSpace(entry.Category) == "" {
		entry.Category = defaultTxnCategory
	}
	return entry
}

// TransactionMeta overrides the category and note of a synthesized ledger
// entry. Zero values fall back to the defaults.
type TransactionMeta struct {
	Category string
	Note     string
}

// ApplyMoneyDelta adds delta to the balance (floored at zero) and logs one
// synthesized transaction in the same commit: income for delta >= 0, expense
// otherwise, amount abs(delta).
func (s *Store) ApplyMoneyDelta(delta int, meta TransactionMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyMoneyDeltaLocked(delta, meta)
}

func (s *Store) applyMoneyDeltaLocked(delta int, meta TransactionMeta) {
	kind := TxnIncome
	amount := delta
	if delta < 0 {
		kind = TxnExpense
		amount = -delta
	}
	entry := s.fillTransaction(Transaction{
		Type:     kind,
		Amount:   amount,
		Category: meta.Category,
		Note:     meta.Note,
	})

	next := cloneGameState(s.state)
	next.Money += delta
	next.Transactions = append([]Transaction{entry}, next.Transactions...)
	s.commitLocked(next)
}

// SetNeed stores one gauge value, clamped to [NeedMin, NeedMax], then
// evaluates the day-advance trigger.
func (s *Store) SetNeed(id Need, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setNeedLocked(id, value)
}

// BumpNeed is SetNeed relative to the current gauge value.
func (s *Store) BumpNeed(id Need, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setNeedLocked(id, s.state.Needs[id]+delta)
}

func (s *Store) setNeedLocked(id Need, value int) {
	if !s.isGauge(id) {
		return
	}
	prevComplete := s.saturatedLocked()

	next := cloneGameState(s.state)
	next.Needs[id] = clampNeed(value)
	s.commitLocked(next)

	// Day advance fires on the rising edge only: the saturated needs were
	// stored (and broadcast) by the commit above, then the reset and the
	// day increment land together as one more commit.
	if !prevComplete && s.saturatedLocked() {
		s.advanceDayLocked()
	}
}

func (s *Store) isGauge(id Need) bool {
	for _, g := range s.gauges {
		if g == id {
			return true
		}
	}
	return false
}

func (s *Store) saturatedLocked() bool {
	if len(s.gauges) == 0 {
		return false
	}
	for _, g := range s.gauges {
		if s.state.Needs[g] < NeedMax {
			return false
		}
	}
	return true
}

func (s *Store) advanceDayLocked() {
	s.ages[s.state.AnimalID]++
	s.persistAgesLocked()

	def := defaultStateForGauges(s.gauges)
	next := cloneGameState(s.state)
	for _, g := range s.gauges {
		next.Needs[g] = def.Needs[g]
	}
	next.DaysPlayed++
	s.commitLocked(next)
}

// AddOwnedAccessory raises the owned count for an accessory kind. Adds of
// zero or less are silent no-ops.
func (s *Store) AddOwnedAccessory(id string, count int) {
	id = strings.TrimSpace(id)
	if id == "" || count <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneGameState(s.state)
	next.OwnedAccessories[id] += count
	s.commitLocked(next)
}

// PurchaseAccessory deducts cost, raises the owned count by one and logs the
// expense as one commit. Insufficient balances are silent no-ops. Unlike pets,
// accessories stack, so repeat purchases are allowed.
func (s *Store) PurchaseAccessory(id string, cost int) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if cost < 0 {
		cost = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Money < cost {
		return
	}
	entry := s.fillTransaction(Transaction{
		Type:     TxnExpense,
		Amount:   cost,
		Category: "accessories",
		Note:     id,
	})

	next := cloneGameState(s.state)
	next.Money -= cost
	next.OwnedAccessories[id]++
	next.Transactions = append([]Transaction{entry}, next.Transactions...)
	s.commitLocked(next)
}

// PurchasePremiumPet deducts cost, unlocks the pet and logs the expense as
// one commit. Already-owned pets and insufficient balances are silent no-ops.
func (s *Store) PurchasePremiumPet(id string, cost int) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if cost < 0 {
		cost = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.OwnedPets[id] {
		return
	}
	if s.state.Money < cost {
		return
	}
	entry := s.fillTransaction(Transaction{
		Type:     TxnExpense,
		Amount:   cost,
		Category: "pets",
		Note:     id,
	})

	next := cloneGameState(s.state)
	next.Money -= cost
	next.OwnedPets[id] = true
	next.Transactions = append([]Transaction{entry}, next.Transactions...)
	s.commitLocked(next)
}
