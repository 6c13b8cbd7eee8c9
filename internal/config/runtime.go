package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Runtime is the process-level configuration parsed from the environment.
// Storage selects the save backend: file (default), sqlite or postgres.
type Runtime struct {
	Addr        string `env:"PENNYPET_ADDR"`
	DataDir     string `env:"PENNYPET_DATA_DIR"`
	ConfigPath  string `env:"PENNYPET_CONFIG" envDefault:"pennypet_config.yml"`
	Storage     string `env:"PENNYPET_STORAGE" envDefault:"file"`
	SQLitePath  string `env:"PENNYPET_SQLITE_PATH"`
	PostgresDSN string `env:"PENNYPET_POSTGRES_DSN"`
}

func ParseRuntime() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("parse env config: %w", err)
	}
	if rt.PostgresDSN == "" {
		rt.PostgresDSN = os.Getenv("DATABASE_URL")
	}
	return rt, nil
}
