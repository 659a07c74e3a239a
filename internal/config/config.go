package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Polymarket PolymarketConfig `mapstructure:"polymarket"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Report     ReportConfig     `mapstructure:"report"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// PolymarketConfig holds the endpoints and fetch behavior for the
// Polymarket APIs.
type PolymarketConfig struct {
	DataAPIURL       string        `mapstructure:"data_api_url"`
	GammaAPIURL      string        `mapstructure:"gamma_api_url"`
	SubgraphURL      string        `mapstructure:"subgraph_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	PageSize         int           `mapstructure:"page_size"`
	FilteredPageSize int           `mapstructure:"filtered_page_size"`
	MaxOffset        int           `mapstructure:"max_offset"`
	PageDelay        time.Duration `mapstructure:"page_delay"`
	UserAgent        string        `mapstructure:"user_agent"`
}

// AnalysisConfig holds leaderboard and scan defaults.
type AnalysisConfig struct {
	Resolution   string  `mapstructure:"resolution"`
	MinCash      float64 `mapstructure:"min_cash"`
	TopN         int     `mapstructure:"top_n"`
	MidRangeLow  float64 `mapstructure:"mid_range_low"`
	MidRangeHigh float64 `mapstructure:"mid_range_high"`
}

// ReportConfig holds JSON export configuration.
type ReportConfig struct {
	OutputDir       string `mapstructure:"output_dir"`
	FilePermissions uint32 `mapstructure:"file_permissions"`
	DirPermissions  uint32 `mapstructure:"dir_permissions"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken   string        `mapstructure:"bot_token"`
	ChatID     string        `mapstructure:"chat_id"`
	Enabled    bool          `mapstructure:"enabled"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	TopN       int           `mapstructure:"top_n"`
}

// ServerConfig holds dashboard server configuration.
type ServerConfig struct {
	ListenAddr        string        `mapstructure:"listen_addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("POLYMARKET_ANALYZER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration built from defaults and environment
// variables alone, used when no config file is provided.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("POLYMARKET_ANALYZER")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Polymarket defaults
	v.SetDefault("polymarket.data_api_url", "https://data-api.polymarket.com")
	v.SetDefault("polymarket.gamma_api_url", "https://gamma-api.polymarket.com")
	v.SetDefault("polymarket.subgraph_url", "https://api.goldsky.com/api/public/project_cl6mb8i9h0003e201j6li0diw/subgraphs/orderbook-subgraph/0.0.1/gn")
	v.SetDefault("polymarket.timeout", "30s")
	v.SetDefault("polymarket.page_size", 500)
	v.SetDefault("polymarket.filtered_page_size", 1000)
	v.SetDefault("polymarket.max_offset", 10000)
	v.SetDefault("polymarket.page_delay", "100ms")
	v.SetDefault("polymarket.user_agent", "Mozilla/5.0")

	// Analysis defaults
	v.SetDefault("analysis.resolution", "Yes")
	v.SetDefault("analysis.min_cash", 0)
	v.SetDefault("analysis.top_n", 20)
	v.SetDefault("analysis.mid_range_low", 0.04)
	v.SetDefault("analysis.mid_range_high", 0.15)

	// Report defaults
	v.SetDefault("report.output_dir", "./reports")
	v.SetDefault("report.file_permissions", 0o644)
	v.SetDefault("report.dir_permissions", 0o755)

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay", "1s")
	v.SetDefault("telegram.top_n", 10)

	// Server defaults
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.read_header_timeout", "5s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Polymarket config
	if c.Polymarket.DataAPIURL == "" {
		return fmt.Errorf("polymarket.data_api_url is required")
	}
	if c.Polymarket.GammaAPIURL == "" {
		return fmt.Errorf("polymarket.gamma_api_url is required")
	}
	if c.Polymarket.SubgraphURL == "" {
		return fmt.Errorf("polymarket.subgraph_url is required")
	}
	if c.Polymarket.Timeout <= 0 {
		return fmt.Errorf("polymarket.timeout must be positive")
	}
	if c.Polymarket.PageSize < 1 {
		return fmt.Errorf("polymarket.page_size must be at least 1")
	}
	if c.Polymarket.FilteredPageSize < 1 {
		return fmt.Errorf("polymarket.filtered_page_size must be at least 1")
	}
	if c.Polymarket.MaxOffset < c.Polymarket.PageSize {
		return fmt.Errorf("polymarket.max_offset must cover at least one page")
	}

	// Validate Analysis config
	if c.Analysis.Resolution != "Yes" && c.Analysis.Resolution != "No" {
		return fmt.Errorf("analysis.resolution must be Yes or No")
	}
	if c.Analysis.MinCash < 0 {
		return fmt.Errorf("analysis.min_cash must not be negative")
	}
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be at least 1")
	}
	if c.Analysis.MidRangeLow < 0 || c.Analysis.MidRangeHigh > 1 || c.Analysis.MidRangeLow >= c.Analysis.MidRangeHigh {
		return fmt.Errorf("analysis.mid_range bounds must satisfy 0 <= low < high <= 1")
	}

	// Validate Report config
	if c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
		if c.Telegram.TopN < 1 {
			return fmt.Errorf("telegram.top_n must be at least 1")
		}
	}

	// Validate Server config
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console")
	}

	return nil
}
