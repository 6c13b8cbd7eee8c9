package telemetry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// sinceFromQuery reads ?since=RFC3339 or ?hours=N, defaulting to the last day.
func sinceFromQuery(r *http.Request) (time.Time, error) {
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		return time.Parse(time.RFC3339, raw)
	}
	hours := 24
	if raw := strings.TrimSpace(r.URL.Query().Get("hours")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return time.Time{}, strconv.ErrSyntax
		}
		hours = n
	}
	return time.Now().Add(-time.Duration(hours) * time.Hour), nil
}

// GET /api/telemetry/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	since, err := sinceFromQuery(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid time window")
		return
	}

	events, err := h.repo.GetEvents(since, nil)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "telemetry unavailable")
		return
	}
	stats, err := CalculateStats(events, since)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "telemetry unavailable")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/telemetry/events
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	since, err := sinceFromQuery(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid time window")
		return
	}

	var types []EventType
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, EventType(t))
			}
		}
	}

	events, err := h.repo.GetEvents(since, types)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "telemetry unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
