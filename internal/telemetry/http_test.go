package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStatsHandler(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventDecayTick, EventMetadata{"interval_s": 60}))
	require.NoError(t, repo.RecordEvent(EventCycleReward, EventMetadata{"coins": 5}))
	h := NewHandler(repo)

	rec := get(t, h.Stats, "/api/telemetry/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.DecayTicks)
	assert.Equal(t, 1, stats.CycleRewards)
}

func TestStatsHandler_InvalidWindow(t *testing.T) {
	h := NewHandler(NewMemoryRepository())

	for _, target := range []string{
		"/api/telemetry/stats?hours=0",
		"/api/telemetry/stats?hours=soon",
		"/api/telemetry/stats?since=yesterday",
	} {
		rec := get(t, h.Stats, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestEventsHandler_TypeFilter(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventDecayTick, nil))
	require.NoError(t, repo.RecordEvent(EventCycleReward, nil))
	require.NoError(t, repo.RecordEvent(EventMoneyChanged, nil))
	h := NewHandler(repo)

	rec := get(t, h.Events, "/api/telemetry/events?type=decay_tick,cycle_reward")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Events []Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Len(t, out.Events, 2)
	for _, ev := range out.Events {
		assert.NotEqual(t, EventMoneyChanged, ev.Type)
	}
}

func TestEventsHandler_SinceWindow(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventDecayTick, nil))
	h := NewHandler(repo)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	rec := get(t, h.Events, "/api/telemetry/events?since="+future)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Events []Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Empty(t, out.Events)
}
