package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Port != 8080 {
		t.Errorf("App.Port = %d, want 8080", cfg.App.Port)
	}
	if cfg.App.DataFile == "" {
		t.Error("App.DataFile default missing")
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("AI.Model = %q, want gemini-2.5-flash", cfg.AI.Model)
	}
	if cfg.AI.CacheTTL != 15*time.Minute {
		t.Errorf("AI.CacheTTL = %v, want 15m", cfg.AI.CacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("BQ_DATASET", "personal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Port != 9090 {
		t.Errorf("App.Port = %d, want 9090", cfg.App.Port)
	}
	if cfg.AI.Model != "gemini-2.5-pro" {
		t.Errorf("AI.Model = %q, want override", cfg.AI.Model)
	}
	if cfg.BigQuery.Dataset != "personal" {
		t.Errorf("BigQuery.Dataset = %q, want personal", cfg.BigQuery.Dataset)
	}
}
