package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pennypet/internal/gamestate"
)

func TestCompleteActivityHandler(t *testing.T) {
	e, store, _ := newTestEngine(t)
	h := NewHandler(e)
	before := store.GetState().Money

	req := httptest.NewRequest(http.MethodPost, "/api/activity/complete",
		strings.NewReader(`{"activity":"spelling bee"}`))
	rec := httptest.NewRecorder()
	h.CompleteActivity(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("complete activity returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK     bool                    `json:"ok"`
		Reward int                     `json:"reward"`
		State  gamestate.StateResponse `json:"state"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Reward != e.Balance.CycleRewardCoins {
		t.Fatalf("response ok=%v reward=%d", resp.OK, resp.Reward)
	}
	if resp.State.State.Money != before+e.Balance.CycleRewardCoins {
		t.Fatalf("money = %d, want %d", resp.State.State.Money, before+e.Balance.CycleRewardCoins)
	}
}

func TestCompleteActivityHandler_MissingActivity(t *testing.T) {
	e, store, _ := newTestEngine(t)
	h := NewHandler(e)

	req := httptest.NewRequest(http.MethodPost, "/api/activity/complete", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CompleteActivity(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing activity returned %d, want 400", rec.Code)
	}
	if len(store.GetState().Transactions) != 0 {
		t.Fatal("rejected request still paid a reward")
	}
}

func TestCompleteActivityHandler_BadJSON(t *testing.T) {
	e, _, _ := newTestEngine(t)
	h := NewHandler(e)

	req := httptest.NewRequest(http.MethodPost, "/api/activity/complete", strings.NewReader(`{"activity"`))
	rec := httptest.NewRecorder()
	h.CompleteActivity(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json returned %d, want 400", rec.Code)
	}
}
