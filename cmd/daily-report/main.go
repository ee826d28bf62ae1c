package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/chiu791118/daily-report-2.0/internal/app"
	"github.com/chiu791118/daily-report-2.0/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	runDate      = flag.String("date", "", "Trade date to generate for (YYYY-MM-DD, default today)")
	inputPath    = flag.String("input", "", "Input document path (overrides config)")
	serveMode    = flag.Bool("schedule", false, "Run on the configured cron schedule instead of once")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Daily Report version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("daily-report.toml"); err == nil {
			configFiles = append(configFiles, "daily-report.toml")
		} else if _, err := os.Stat("config/daily-report.toml"); err == nil {
			configFiles = append(configFiles, "config/daily-report.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	if *inputPath != "" {
		config.Input.Path = *inputPath
	}

	logger = common.InitLogger(config)

	common.PrintBanner(common.GetVersion())

	logger.Info().
		Strs("config_files", configFiles).
		Str("catalog", config.Catalog.Path).
		Str("input", config.Input.Path).
		Str("log_level", config.Logging.Level).
		Msg("Application configuration loaded")

	tradeDate, err := resolveTradeDate(*runDate)
	if err != nil {
		logger.Fatal().Err(err).Str("date", *runDate).Msg("Invalid -date value")
		os.Exit(1)
	}

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	if *serveMode || config.Schedule.Enabled {
		runScheduled(application)
		return
	}

	report, err := application.Run(context.Background(), tradeDate)
	if err != nil {
		logger.Fatal().Err(err).Msg("Report run failed")
		os.Exit(1)
	}

	fmt.Printf("Report saved: %s (%s)\n", report.Title, report.ID)
}

// resolveTradeDate parses the -date flag, defaulting to today.
func resolveTradeDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", value)
}

// runScheduled runs the pipeline on the configured cron expression until
// interrupted. The cron spec includes a seconds field.
func runScheduled(application *app.App) {
	scheduler := cron.New(cron.WithSeconds())

	_, err := scheduler.AddFunc(config.Schedule.Cron, func() {
		now := time.Now()
		tradeDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		report, err := application.Run(context.Background(), tradeDate)
		if err != nil {
			logger.Error().Err(err).Msg("Scheduled report run failed")
			return
		}
		logger.Info().Str("title", report.Title).Msg("Scheduled report run complete")
	})
	if err != nil {
		logger.Fatal().Err(err).Str("cron", config.Schedule.Cron).Msg("Invalid cron expression")
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info().Str("cron", config.Schedule.Cron).Msg("Scheduler started - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Interrupt signal received, shutting down")
	ctx := scheduler.Stop()
	<-ctx.Done()
	logger.Info().Msg("Scheduler stopped")
}
