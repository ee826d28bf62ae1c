package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Catalog     CatalogConfig  `toml:"catalog"`
	Input       InputConfig    `toml:"input"`
	Ranking     RankingConfig  `toml:"ranking"`
	Pipeline    PipelineConfig `toml:"pipeline"`
	LLM         LLMConfig      `toml:"llm"`
	Storage     StorageConfig  `toml:"storage"`
	Logging     LoggingConfig  `toml:"logging"`
	Schedule    ScheduleConfig `toml:"schedule"`
}

// CatalogConfig points at the entity catalog file
type CatalogConfig struct {
	Path string `toml:"path"` // entities.yaml location
}

// InputConfig points at the collected intelligence document for a run
type InputConfig struct {
	Path string `toml:"path"` // intel.json location
}

// RankingConfig holds the additive scoring weights and trigger thresholds.
// Defaults mirror the production values; override per deployment, not in code.
type RankingConfig struct {
	EarningsWeight int `toml:"earnings_weight"` // earnings today
	NewsWeight     int `toml:"news_weight"`     // mentioned in today's news
	MoveWeight     int `toml:"move_weight"`     // each technical trigger

	DailyMoveThreshold  float64 `toml:"daily_move_threshold"`  // abs % for single-day move trigger
	WeeklyMoveThreshold float64 `toml:"weekly_move_threshold"` // abs % for one-week move trigger
	RSIOverbought       float64 `toml:"rsi_overbought"`
	RSIOversold         float64 `toml:"rsi_oversold"`
	VolumeRatioTrigger  float64 `toml:"volume_ratio_trigger"`
	LevelProximity      float64 `toml:"level_proximity"` // fraction of price counting as "near" a level

	MaxWatchlistCandidates int `toml:"max_watchlist_candidates"`
	MaxDiscoveryCandidates int `toml:"max_discovery_candidates"`
	MaxDiscoveryHeadlines  int `toml:"max_discovery_headlines"`
}

// PipelineConfig bounds prompt assembly and report post-processing
type PipelineConfig struct {
	MaxPromptRecords     int `toml:"max_prompt_records"`     // records included per prompt
	MaxPreviousChars     int `toml:"max_previous_chars"`     // previous-report excerpt cap
	MaxExtractedTickers  int `toml:"max_extracted_tickers"`  // tickers pulled from equity sections
	PreviousLookbackDays int `toml:"previous_lookback_days"` // business days tried for prior content

	Stages StagesConfig `toml:"stages"`
}

// StageParams are the sampling parameters for one generation stage
type StageParams struct {
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// StagesConfig holds per-stage sampling parameters, keyed by stage
type StagesConfig struct {
	HiddenLayer StageParams `toml:"hidden_layer"`
	Layer01     StageParams `toml:"layer_0_1"`
	Layer23     StageParams `toml:"layer_2_3"`
	Layer45     StageParams `toml:"layer_4_5"`
	NewsSummary StageParams `toml:"news_summary"`
}

// LLMConfig contains provider selection and generation settings
type LLMConfig struct {
	DefaultProvider   string  `toml:"default_provider"` // "gemini" or "claude"
	Model             string  `toml:"model"`
	GeminiAPIKey      string  `toml:"gemini_api_key"`
	ClaudeAPIKey      string  `toml:"claude_api_key"`
	Temperature       float32 `toml:"temperature"`
	MaxTokens         int     `toml:"max_tokens"`
	RequestsPerMinute int     `toml:"requests_per_minute"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// ScheduleConfig enables serve mode on a cron expression
type ScheduleConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"` // e.g. "0 30 17 * * 1-5" (pre-market, Taipei time)
}

// NewDefaultConfig creates a configuration with default values.
// Scoring weights and stage parameters default to the original production
// constants; only deployment-specific settings need a config file.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Catalog: CatalogConfig{
			Path: "./config/entities.yaml",
		},
		Input: InputConfig{
			Path: "./data/intel.json",
		},
		Ranking: RankingConfig{
			EarningsWeight:         3,
			NewsWeight:             2,
			MoveWeight:             1,
			DailyMoveThreshold:     2.0,
			WeeklyMoveThreshold:    5.0,
			RSIOverbought:          70,
			RSIOversold:            30,
			VolumeRatioTrigger:     1.5,
			LevelProximity:         0.02,
			MaxWatchlistCandidates: 15,
			MaxDiscoveryCandidates: 15,
			MaxDiscoveryHeadlines:  3,
		},
		Pipeline: PipelineConfig{
			MaxPromptRecords:     50,
			MaxPreviousChars:     8000,
			MaxExtractedTickers:  15,
			PreviousLookbackDays: 3,
			Stages: StagesConfig{
				HiddenLayer: StageParams{Temperature: 0.2, MaxTokens: 3000},
				Layer01:     StageParams{Temperature: 0.3, MaxTokens: 4000},
				Layer23:     StageParams{Temperature: 0.3, MaxTokens: 3000},
				Layer45:     StageParams{Temperature: 0.3, MaxTokens: 3000},
				NewsSummary: StageParams{Temperature: 0.3, MaxTokens: 1000},
			},
		},
		LLM: LLMConfig{
			DefaultProvider:   "gemini",
			Model:             "gemini-2.0-flash",
			Temperature:       0.3,
			MaxTokens:         4000,
			RequestsPerMinute: 30,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Schedule: ScheduleConfig{
			Enabled: false,
			Cron:    "0 30 17 * * 1-5",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DAILYREPORT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if path := os.Getenv("DAILYREPORT_CATALOG_PATH"); path != "" {
		config.Catalog.Path = path
	}

	if path := os.Getenv("DAILYREPORT_INPUT_PATH"); path != "" {
		config.Input.Path = path
	}

	if key := os.Getenv("DAILYREPORT_GEMINI_API_KEY"); key != "" {
		config.LLM.GeminiAPIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.LLM.GeminiAPIKey = key
	}

	if key := os.Getenv("DAILYREPORT_CLAUDE_API_KEY"); key != "" {
		config.LLM.ClaudeAPIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.LLM.ClaudeAPIKey = key
	}

	if model := os.Getenv("DAILYREPORT_LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}

	if provider := os.Getenv("DAILYREPORT_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = provider
	}

	if rpm := os.Getenv("DAILYREPORT_LLM_RPM"); rpm != "" {
		if v, err := strconv.Atoi(rpm); err == nil && v > 0 {
			config.LLM.RequestsPerMinute = v
		}
	}

	if path := os.Getenv("DAILYREPORT_STORAGE_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if level := os.Getenv("DAILYREPORT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// IsProduction returns true when running with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
