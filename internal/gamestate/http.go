package gamestate

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// StateResponse is the full client snapshot: the committed state plus the
// derived mood and the pet age map.
type StateResponse struct {
	State GameState `json:"state"`
	Mood  Mood      `json:"mood"`
	Ages  PetAges   `json:"ages"`
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func (h *Handler) buildStateResponse() StateResponse {
	st := h.store.GetState()
	return StateResponse{
		State: st,
		Mood:  MoodFor(st.Needs),
		Ages:  h.store.Ages(),
	}
}

// GET /api/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.buildStateResponse())
}

// GET /api/pets/ages
func (h *Handler) PetAges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ages": h.store.Ages()})
}

// POST /api/needs/set
func (h *Handler) SetNeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Need  string `json:"need"`
		Value int    `json:"value"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	need := Need(strings.TrimSpace(in.Need))
	if !h.isKnownGauge(need) {
		writeErr(w, http.StatusBadRequest, "unknown need")
		return
	}

	h.store.SetNeed(need, in.Value)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"state": h.buildStateResponse(),
	})
}

// POST /api/needs/bump
func (h *Handler) BumpNeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Need  string `json:"need"`
		Delta int    `json:"delta"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	need := Need(strings.TrimSpace(in.Need))
	if !h.isKnownGauge(need) {
		writeErr(w, http.StatusBadRequest, "unknown need")
		return
	}

	h.store.BumpNeed(need, in.Delta)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"state": h.buildStateResponse(),
	})
}

func (h *Handler) isKnownGauge(id Need) bool {
	for _, g := range h.store.Gauges() {
		if g == id {
			return true
		}
	}
	return false
}

// POST /api/money/delta
func (h *Handler) MoneyDelta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Delta    int    `json:"delta"`
		Category string `json:"category"`
		Note     string `json:"note"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.store.ApplyMoneyDelta(in.Delta, TransactionMeta{
		Category: in.Category,
		Note:     in.Note,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"state": h.buildStateResponse(),
	})
}

// GET+POST /api/transactions
func (h *Handler) TransactionsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTransactions(w, r)
	case http.MethodPost:
		h.createTransaction(w, r)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	entries := h.store.GetState().Transactions
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeErr(w, http.StatusBadRequest, "invalid limit")
			return
		}
		if limit < len(entries) {
			entries = entries[:limit]
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": entries})
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Type     string `json:"type"`
		Amount   int    `json:"amount"`
		Category string `json:"category"`
		Note     string `json:"note"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.store.AddTransaction(Transaction{
		Type:     strings.TrimSpace(in.Type),
		Amount:   in.Amount,
		Category: in.Category,
		Note:     in.Note,
	})

	st := h.store.GetState()
	var created Transaction
	if len(st.Transactions) > 0 {
		created = st.Transactions[0]
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"ok":          true,
		"transaction": created,
	})
}

// POST /api/accessories/add
func (h *Handler) AddAccessory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		AccessoryID string `json:"accessoryId"`
		Count       int    `json:"count"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	id := strings.TrimSpace(in.AccessoryID)
	if id == "" {
		writeErr(w, http.StatusBadRequest, `missing field "accessoryId"`)
		return
	}
	count := in.Count
	if count == 0 {
		count = 1
	}
	if count < 0 {
		writeErr(w, http.StatusBadRequest, "count must be positive")
		return
	}

	h.store.AddOwnedAccessory(id, count)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"state": h.buildStateResponse(),
	})
}

// POST /api/accessories/equip
func (h *Handler) EquipAccessory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		AccessoryID string `json:"accessoryId"`
		Equipped    bool   `json:"equipped"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	id := strings.TrimSpace(in.AccessoryID)
	if id == "" {
		writeErr(w, http.StatusBadRequest, `missing field "accessoryId"`)
		return
	}

	if in.Equipped && h.store.GetState().OwnedAccessories[id] <= 0 {
		writeJSON(w, http.StatusConflict, map[string]any{
			"ok":     false,
			"error":  "accessory not owned",
			"reason": "not_owned",
			"state":  h.buildStateResponse(),
		})
		return
	}

	h.store.SetEquippedAccessory(id, in.Equipped)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"state": h.buildStateResponse(),
	})
}
