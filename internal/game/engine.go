package game

import (
	"context"
	"log"
	"strings"
	"time"

	"pennypet/internal/config"
	"pennypet/internal/gamestate"
	"pennypet/internal/telemetry"
)

// Engine drives the timer side of the game: periodic need decay and activity
// cycle rewards. It only ever talks to the store through its public mutators.
type Engine struct {
	Store     *gamestate.Store
	Balance   config.Balance
	Telemetry telemetry.Repository
	Logger    *log.Logger
}

// DecayStep applies one decay tick: each gauge drops by its configured step,
// and health erodes only while some other gauge sits at zero.
func (e Engine) DecayStep() {
	for _, g := range e.Store.Gauges() {
		if step := e.decayFor(g); step > 0 {
			e.Store.BumpNeed(g, -step)
		}
	}
	if e.Balance.DecayHealthNeglect > 0 && e.neglected() {
		e.Store.BumpNeed(gamestate.NeedHealth, -e.Balance.DecayHealthNeglect)
	}
	e.recordEvent(telemetry.EventDecayTick, telemetry.EventMetadata{
		"interval_s": e.Balance.DecayIntervalSeconds,
	})
}

func (e Engine) decayFor(g gamestate.Need) int {
	switch g {
	case gamestate.NeedHunger:
		return e.Balance.DecayHunger
	case gamestate.NeedThirst:
		return e.Balance.DecayThirst
	case gamestate.NeedFun:
		return e.Balance.DecayFun
	case gamestate.NeedSleep:
		return e.Balance.DecaySleep
	}
	return 0
}

func (e Engine) neglected() bool {
	st := e.Store.GetState()
	for _, g := range e.Store.Gauges() {
		if g == gamestate.NeedHealth {
			continue
		}
		if st.Needs[g] <= gamestate.NeedMin {
			return true
		}
	}
	return false
}

// Run applies DecayStep every Balance.DecayIntervalSeconds until ctx is
// canceled. The caller owns cancellation.
func (e Engine) Run(ctx context.Context) {
	interval := time.Duration(e.Balance.DecayIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logf("decay loop: every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.DecayStep()
		}
	}
}

// CompleteCycle rewards one finished activity cycle: coins plus a fun bump.
// The client's activity timer decides when a cycle is complete.
func (e Engine) CompleteCycle(activity string) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		activity = "activity"
	}
	e.Store.ApplyMoneyDelta(e.Balance.CycleRewardCoins, gamestate.TransactionMeta{
		Category: "activity",
		Note:     activity,
	})
	e.Store.BumpNeed(gamestate.NeedFun, e.Balance.CycleFunGain)
	e.recordEvent(telemetry.EventCycleReward, telemetry.EventMetadata{
		"activity": activity,
		"coins":    e.Balance.CycleRewardCoins,
	})
}

func (e Engine) recordEvent(t telemetry.EventType, md telemetry.EventMetadata) {
	if e.Telemetry == nil {
		return
	}
	if err := e.Telemetry.RecordEvent(t, md); err != nil {
		e.logf("record %s event failed: %v", t, err)
	}
}

func (e Engine) logf(format string, args ...any) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
