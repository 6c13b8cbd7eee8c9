package config

import (
	"os"
	"strconv"
)

// FromEnv loads pacing configuration from environment variables
// Falls back to defaults if variables are not set
func FromEnv() Balance {
	cfg := Default()

	if val := getEnvInt("PENNYPET_DECAY_INTERVAL_S"); val > 0 {
		cfg.DecayIntervalSeconds = val
	}
	if val := getEnvInt("PENNYPET_DECAY_HUNGER"); val > 0 {
		cfg.DecayHunger = val
	}
	if val := getEnvInt("PENNYPET_DECAY_THIRST"); val > 0 {
		cfg.DecayThirst = val
	}
	if val := getEnvInt("PENNYPET_DECAY_FUN"); val > 0 {
		cfg.DecayFun = val
	}
	if val := getEnvInt("PENNYPET_DECAY_SLEEP"); val > 0 {
		cfg.DecaySleep = val
	}
	if val := getEnvInt("PENNYPET_DECAY_HEALTH_NEGLECT"); val > 0 {
		cfg.DecayHealthNeglect = val
	}
	if val := getEnvInt("PENNYPET_CYCLE_SECONDS"); val > 0 {
		cfg.CycleSeconds = val
	}
	if val := getEnvInt("PENNYPET_CYCLE_REWARD_COINS"); val > 0 {
		cfg.CycleRewardCoins = val
	}
	if val := getEnvInt("PENNYPET_CYCLE_FUN_GAIN"); val > 0 {
		cfg.CycleFunGain = val
	}

	// Support preset modes
	if mode := os.Getenv("PENNYPET_PACE"); mode != "" {
		switch mode {
		case "relaxed":
			return Relaxed()
		case "brisk":
			return Brisk()
		}
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
