package game

import (
	"encoding/json"
	"net/http"
	"strings"

	"pennypet/internal/gamestate"
)

type Handler struct {
	engine Engine
}

func NewHandler(engine Engine) *Handler {
	return &Handler{engine: engine}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// POST /api/activity/complete
func (h *Handler) CompleteActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Activity string `json:"activity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	activity := strings.TrimSpace(in.Activity)
	if activity == "" {
		writeErr(w, http.StatusBadRequest, `missing field "activity"`)
		return
	}

	h.engine.CompleteCycle(activity)

	st := h.engine.Store.GetState()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"reward": h.engine.Balance.CycleRewardCoins,
		"state": gamestate.StateResponse{
			State: st,
			Mood:  gamestate.MoodFor(st.Needs),
			Ages:  h.engine.Store.Ages(),
		},
	})
}
