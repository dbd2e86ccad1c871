package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCategories are the themed pools shipped under data/.
var DefaultCategories = []string{
	"cultura", "personas", "nombres", "preguntas", "animales", "entretenimiento", "comida",
}

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Data struct {
		Dir        string   `yaml:"dir"`
		Categories []string `yaml:"categories"`
	} `yaml:"data"`
	Game struct {
		Rounds  int `yaml:"rounds"`
		Guesses int `yaml:"guesses"`
	} `yaml:"game"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Category struct {
		TTL string `yaml:"ttl"`
	} `yaml:"category"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// CategoryIDs returns the configured categories, or DefaultCategories when none are set.
func (c Config) CategoryIDs() []string {
	if len(c.Data.Categories) == 0 {
		return DefaultCategories
	}
	return c.Data.Categories
}

// DataDir returns the category data directory, defaulting to "data".
func (c Config) DataDir() string {
	if c.Data.Dir == "" {
		return "data"
	}
	return c.Data.Dir
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
