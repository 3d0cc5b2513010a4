package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scrape struct {
		Headless        bool     `yaml:"headless"`
		Sites           []string `yaml:"sites"` // empty = all registered
		MaxSites        int      `yaml:"max_sites"`
		Concurrency     int      `yaml:"concurrency"`
		ScheduleMinutes int      `yaml:"schedule_minutes"` // 0 = no scheduled runs
	} `yaml:"scrape"`

	Search struct {
		Keywords    []string `yaml:"keywords"`
		Locations   []string `yaml:"locations"`
		MaxSearches int      `yaml:"max_searches"`
		MaxPages    int      `yaml:"max_pages"`
	} `yaml:"search"`
}

// Default returns the baseline config; Load unmarshals the user's yaml
// over it so unset keys keep their defaults.
func Default() Config {
	var cfg Config
	cfg.App.Port = 8790
	cfg.Scrape.Headless = true
	cfg.Scrape.Concurrency = 1
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
