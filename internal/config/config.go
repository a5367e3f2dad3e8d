// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration for the API server and CLI.
type Config struct {
	App struct {
		Port     int    `envconfig:"PORT" default:"8080"`
		DataFile string `envconfig:"DATA_FILE" default:"./data/wealthmind.json"`
	}

	AI struct {
		Model    string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
		CacheTTL time.Duration `envconfig:"AI_CACHE_TTL" default:"15m"`
	}

	GCS struct {
		Bucket string `envconfig:"GCS_BUCKET"`
		Object string `envconfig:"GCS_OBJECT" default:"wealthmind/snapshot.json"`
	}

	BigQuery struct {
		ProjectID string `envconfig:"BQ_PROJECT_ID"`
		Dataset   string `envconfig:"BQ_DATASET" default:"finance"`
		Table     string `envconfig:"BQ_TABLE" default:"transactions"`
	}

	Notion struct {
		Token      string `envconfig:"NOTION_TOKEN"`
		DatabaseID string `envconfig:"NOTION_DATABASE_ID"`
	}
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
