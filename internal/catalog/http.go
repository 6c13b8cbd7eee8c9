package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"pennypet/internal/gamestate"
)

// Handler serves the shop: the catalog listing plus the purchase and pet
// selection flows that need price and ownership checks in front of the store.
type Handler struct {
	cat   *Catalog
	store *gamestate.Store
}

func NewHandler(cat *Catalog, store *gamestate.Store) *Handler {
	return &Handler{cat: cat, store: store}
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

func (h *Handler) stateResponse() gamestate.StateResponse {
	st := h.store.GetState()
	return gamestate.StateResponse{
		State: st,
		Mood:  gamestate.MoodFor(st.Needs),
		Ages:  h.store.Ages(),
	}
}

// GET /api/catalog
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pets":           h.cat.Pets,
		"accessories":    h.cat.Accessories,
		"petCosts":       h.cat.PetCosts(),
		"accessoryCosts": h.cat.AccessoryCosts(),
	})
}

// POST /api/pets/select
func (h *Handler) SelectPet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		AnimalID string `json:"animalId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	id := strings.TrimSpace(in.AnimalID)
	if id == "" {
		writeErr(w, http.StatusBadRequest, `missing field "animalId"`)
		return
	}
	pet, ok := h.cat.Pet(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown pet")
		return
	}
	if pet.Cost > 0 && !h.store.GetState().OwnedPets[id] {
		writeJSON(w, http.StatusConflict, map[string]any{
			"ok":     false,
			"error":  "pet not owned",
			"reason": "not_owned",
			"state":  h.stateResponse(),
		})
		return
	}

	h.store.SetSelectedPet(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"state": h.stateResponse(),
	})
}

// POST /api/pets/purchase
func (h *Handler) PurchasePet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		AnimalID string `json:"animalId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	id := strings.TrimSpace(in.AnimalID)
	if id == "" {
		writeErr(w, http.StatusBadRequest, `missing field "animalId"`)
		return
	}
	pet, ok := h.cat.Pet(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown pet")
		return
	}

	if h.store.GetState().OwnedPets[id] || pet.Cost == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"already": true,
			"state":   h.stateResponse(),
		})
		return
	}

	h.store.PurchasePremiumPet(id, pet.Cost)
	if !h.store.GetState().OwnedPets[id] {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"ok":     false,
			"error":  "not enough coin to adopt pet",
			"reason": "insufficient_funds",
			"need":   pet.Cost,
			"state":  h.stateResponse(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"already": false,
		"state":   h.stateResponse(),
	})
}

// POST /api/accessories/purchase
func (h *Handler) PurchaseAccessory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		AccessoryID string `json:"accessoryId"`
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
	acc, ok := h.cat.Accessory(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown accessory")
		return
	}

	before := h.store.GetState().OwnedAccessories[id]
	h.store.PurchaseAccessory(id, acc.Cost)
	after := h.store.GetState()
	if after.OwnedAccessories[id] <= before {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"ok":     false,
			"error":  "not enough coin to buy accessory",
			"reason": "insufficient_funds",
			"need":   acc.Cost,
			"state":  h.stateResponse(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"owned": after.OwnedAccessories[id],
		"state": h.stateResponse(),
	})
}
