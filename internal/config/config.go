package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type DataConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

type CatalogConfig struct {
	Path string `yaml:"path" json:"path"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":7465"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

// DefaultConfig returns the configuration used when no YAML file is present.
func DefaultConfig() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}
