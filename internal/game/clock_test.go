package game

import (
	"testing"
	"time"
)

func TestNowFunc_NilFallsBackToRealClock(t *testing.T) {
	now := NowFunc(nil)
	if now().IsZero() {
		t.Fatal("real clock returned the zero time")
	}
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now = %v, want %v", c.Now(), start)
	}

	c.Advance(90 * time.Minute)
	if !c.Now().Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("Now = %v after advance", c.Now())
	}

	noon := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	c.Set(noon)
	if got := NowFunc(c)(); !got.Equal(noon) {
		t.Fatalf("NowFunc = %v, want %v", got, noon)
	}
}
