package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	// Create temp config file
	content := `
polymarket:
  data_api_url: "https://data-api.polymarket.com"
  gamma_api_url: "https://gamma-api.polymarket.com"
  timeout: 30s
  page_size: 500
  filtered_page_size: 1000
  max_offset: 10000
  page_delay: 100ms

analysis:
  resolution: "Yes"
  min_cash: 1000
  top_n: 20

report:
  output_dir: "./reports"

telegram:
  bot_token: "test_token"
  chat_id: "12345"
  enabled: true

server:
  listen_addr: ":8080"

logging:
  level: "info"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test Load
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify values
	if cfg.Polymarket.DataAPIURL != "https://data-api.polymarket.com" {
		t.Errorf("Unexpected data API URL: %s", cfg.Polymarket.DataAPIURL)
	}
	if cfg.Polymarket.PageSize != 500 {
		t.Errorf("Unexpected page size: %d", cfg.Polymarket.PageSize)
	}
	if cfg.Polymarket.PageDelay != 100*time.Millisecond {
		t.Errorf("Unexpected page delay: %v", cfg.Polymarket.PageDelay)
	}
	if cfg.Analysis.MinCash != 1000 {
		t.Errorf("Unexpected min cash: %f", cfg.Analysis.MinCash)
	}

	// Subgraph URL should come from defaults even when absent in the file
	if cfg.Polymarket.SubgraphURL == "" {
		t.Error("Expected subgraph URL default to be applied")
	}

	// Test Validate
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.Polymarket.MaxOffset != 10000 {
		t.Errorf("Unexpected max offset: %d", cfg.Polymarket.MaxOffset)
	}
	if cfg.Analysis.Resolution != "Yes" {
		t.Errorf("Unexpected default resolution: %s", cfg.Analysis.Resolution)
	}
}

func TestValidateErrors(t *testing.T) {
	base := func() *Config {
		cfg, err := Default()
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data api url", func(c *Config) { c.Polymarket.DataAPIURL = "" }},
		{"empty gamma url", func(c *Config) { c.Polymarket.GammaAPIURL = "" }},
		{"zero timeout", func(c *Config) { c.Polymarket.Timeout = 0 }},
		{"zero page size", func(c *Config) { c.Polymarket.PageSize = 0 }},
		{"max offset below page size", func(c *Config) { c.Polymarket.MaxOffset = 100 }},
		{"bad resolution", func(c *Config) { c.Analysis.Resolution = "Maybe" }},
		{"negative min cash", func(c *Config) { c.Analysis.MinCash = -1 }},
		{"zero top n", func(c *Config) { c.Analysis.TopN = 0 }},
		{"inverted mid range", func(c *Config) { c.Analysis.MidRangeLow = 0.5; c.Analysis.MidRangeHigh = 0.1 }},
		{"empty output dir", func(c *Config) { c.Report.OutputDir = "" }},
		{"telegram enabled without token", func(c *Config) { c.Telegram.Enabled = true; c.Telegram.ChatID = "1" }},
		{"empty listen addr", func(c *Config) { c.Server.ListenAddr = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "text" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
