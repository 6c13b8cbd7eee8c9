package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_RecordAndGet(t *testing.T) {
	repo := NewMemoryRepository()

	require.NoError(t, repo.RecordEvent(EventDecayTick, EventMetadata{"interval_s": 60}))
	require.NoError(t, repo.RecordEvent(EventCycleReward, EventMetadata{"coins": 5}))

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, EventDecayTick, events[0].Type)
	assert.JSONEq(t, `{"interval_s":60}`, events[0].Metadata)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestMemoryRepository_TypeFilter(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventDecayTick, nil))
	require.NoError(t, repo.RecordEvent(EventCycleReward, nil))
	require.NoError(t, repo.RecordEvent(EventDecayTick, nil))

	events, err := repo.GetEvents(time.Time{}, []EventType{EventDecayTick})
	require.NoError(t, err)
	assert.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, EventDecayTick, ev.Type)
	}

	events, err = repo.GetEvents(time.Time{}, []EventType{EventDecayTick, EventCycleReward})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestMemoryRepository_SinceFilter(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventStateCommitted, nil))

	events, err := repo.GetEvents(time.Now().Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = repo.GetEvents(time.Now().Add(-time.Hour), nil)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestMemoryRepository_Clear(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventStateCommitted, nil))
	require.NoError(t, repo.Clear())

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}
