package config

// Balance holds gameplay pacing configuration
type Balance struct {
	// Need decay
	DecayIntervalSeconds int `json:"decay_interval_seconds"`
	DecayHunger          int `json:"decay_hunger"`
	DecayThirst          int `json:"decay_thirst"`
	DecayFun             int `json:"decay_fun"`
	DecaySleep           int `json:"decay_sleep"`
	DecayHealthNeglect   int `json:"decay_health_neglect"`

	// Activity cycles
	CycleSeconds     int `json:"cycle_seconds"`
	CycleRewardCoins int `json:"cycle_reward_coins"`
	CycleFunGain     int `json:"cycle_fun_gain"`
}

// Default returns the default pacing configuration
func Default() Balance {
	return Balance{
		DecayIntervalSeconds: 60,
		DecayHunger:          2,
		DecayThirst:          3,
		DecayFun:             1,
		DecaySleep:           1,
		DecayHealthNeglect:   1,
		CycleSeconds:         90,
		CycleRewardCoins:     5,
		CycleFunGain:         10,
	}
}

// Relaxed returns gentler pacing for younger players
func Relaxed() Balance {
	cfg := Default()
	cfg.DecayIntervalSeconds = 120
	cfg.DecayThirst = 2
	cfg.CycleSeconds = 60
	cfg.CycleRewardCoins = 8
	return cfg
}

// Brisk returns faster pacing for players who want pressure
func Brisk() Balance {
	cfg := Default()
	cfg.DecayIntervalSeconds = 30
	cfg.DecayHunger = 3
	cfg.DecayThirst = 4
	cfg.DecayFun = 2
	cfg.DecayHealthNeglect = 2
	cfg.CycleRewardCoins = 3
	return cfg
}
