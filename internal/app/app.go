package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/interfaces"
	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/aggregator"
	"github.com/chiu791118/daily-report-2.0/internal/services/catalog"
	"github.com/chiu791118/daily-report-2.0/internal/services/collectors"
	"github.com/chiu791118/daily-report-2.0/internal/services/history"
	"github.com/chiu791118/daily-report-2.0/internal/services/llm"
	"github.com/chiu791118/daily-report-2.0/internal/services/market"
	"github.com/chiu791118/daily-report-2.0/internal/services/pipeline"
	"github.com/chiu791118/daily-report-2.0/internal/services/ranking"
	"github.com/chiu791118/daily-report-2.0/internal/services/resolver"
	"github.com/chiu791118/daily-report-2.0/internal/services/universe"
	"github.com/chiu791118/daily-report-2.0/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	DB            *badger.BadgerDB
	ReportStorage interfaces.ReportStorage

	Catalog    *catalog.Catalog
	Resolver   *resolver.Service
	Universe   *universe.Universe
	Ranking    *ranking.Service
	Aggregator *aggregator.Service
	History    *history.Resolver
	LLM        *llm.ProviderFactory
	Pipeline   *pipeline.Orchestrator
}

// New initializes the application with all dependencies. A catalog failure is
// fatal; everything downstream degrades at run time instead.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	db, err := badger.NewBadgerDB(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.DB = db
	app.ReportStorage = badger.NewReportStorage(db, logger)
	logger.Debug().Str("path", cfg.Storage.Badger.Path).Msg("Storage layer initialized")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load entity catalog: %w", err)
	}
	app.Catalog = cat

	app.Resolver = resolver.NewService(cat)
	app.Universe = universe.Build(tickerNames(app.Resolver.Index()))
	logger.Debug().
		Int("tickers", len(app.Resolver.Index().Tickers())).
		Int("universe", app.Universe.Size()).
		Msg("Entity resolver initialized")

	app.Ranking = ranking.NewService(cfg.Ranking)
	app.Aggregator = aggregator.NewService(
		[]interfaces.Collector{collectors.NewFileCollector(cfg.Input.Path)},
		app.Resolver,
	)
	app.History = history.NewResolver(app.ReportStorage, cfg.Pipeline.PreviousLookbackDays)

	app.LLM = llm.NewProviderFactory(cfg.LLM)
	app.Pipeline = pipeline.NewOrchestrator(app.LLM, cfg.Pipeline)

	logger.Info().
		Str("provider", cfg.LLM.DefaultProvider).
		Str("model", cfg.LLM.Model).
		Msg("Application initialization complete")

	return app, nil
}

// Run generates and persists the report for one trade date.
func (a *App) Run(ctx context.Context, tradeDate time.Time) (*models.Report, error) {
	a.Logger.Info().Str("trade_date", tradeDate.Format("2006-01-02")).Msg("Starting report run")

	doc, err := collectors.LoadDocument(a.Config.Input.Path)
	if err != nil {
		a.Logger.Warn().Err(err).Str("path", a.Config.Input.Path).Msg("Input document unavailable, running with empty inputs")
		doc = &collectors.Document{}
	}

	records := a.Aggregator.CollectAll(ctx)
	stats := aggregator.Summarize(records)
	a.Logger.Info().
		Int("records", stats.Total).
		Int("sources", len(stats.BySource)).
		Msg("Intelligence records collected")

	candidates := a.Ranking.ScoreWatchlist(doc.Watchlist, records, doc.EarningsToday)

	tracked := make(map[string]bool, len(doc.Watchlist))
	for _, q := range doc.Watchlist {
		tracked[q.Symbol] = true
	}
	discoveries := a.Ranking.Discover(records, a.Universe, tracked)

	a.Logger.Info().
		Int("watchlist_candidates", len(candidates)).
		Int("discoveries", len(discoveries)).
		Msg("Candidates ranked")

	previous := a.History.Resolve(tradeDate)

	input := &pipeline.Input{
		TradeDate:         tradeDate,
		Previous:          previous,
		Records:           records,
		Snapshot:          doc.Market,
		Watchlist:         candidateQuotes(candidates, doc.Watchlist),
		WatchlistSymbols:  candidateSymbols(candidates),
		DiscoveredSymbols: discoverySymbols(discoveries),
	}

	bundle := a.Pipeline.Run(ctx, input)

	report := &models.Report{
		Title:           history.ReportTitle(tradeDate),
		TradeDate:       tradeDate,
		ContentMarkdown: RenderMarkdown(bundle),
		Tickers:         bundle.ExtractedTickers,
		Degraded:        bundle.Degraded(),
	}
	if err := a.ReportStorage.SaveReport(report); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	a.Logger.Info().
		Str("title", report.Title).
		Str("id", report.ID).
		Bool("degraded", report.Degraded).
		Strs("flags", bundle.DegradationFlags).
		Msg("Report run complete")

	return report, nil
}

// Close closes all application resources
func (a *App) Close() error {
	if a.LLM != nil {
		if err := a.LLM.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM clients")
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}
	return nil
}

func tickerNames(index *resolver.AliasIndex) map[string]string {
	names := make(map[string]string)
	for _, symbol := range index.Tickers() {
		if name, ok := index.TickerName(symbol); ok {
			names[symbol] = name
		}
	}
	return names
}

// candidateQuotes returns the scored watchlist quotes in candidate order.
func candidateQuotes(candidates []*models.Candidate, quotes []*market.Quote) []*market.Quote {
	bySymbol := make(map[string]*market.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}
	ordered := make([]*market.Quote, 0, len(candidates))
	for _, c := range candidates {
		if q, ok := bySymbol[c.Symbol]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered
}

func candidateSymbols(candidates []*models.Candidate) []string {
	symbols := make([]string, 0, len(candidates))
	for _, c := range candidates {
		symbols = append(symbols, c.Symbol)
	}
	return symbols
}

func discoverySymbols(discoveries []*models.DiscoveryCandidate) []string {
	symbols := make([]string, 0, len(discoveries))
	for _, d := range discoveries {
		symbols = append(symbols, d.Symbol)
	}
	return symbols
}
