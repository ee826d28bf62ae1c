package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/interfaces"
	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/aggregator"
	"github.com/chiu791118/daily-report-2.0/internal/services/market"
)

// Input carries everything one report run needs. All fields are prepared by
// the caller; the orchestrator only generates and assembles.
type Input struct {
	TradeDate time.Time
	Previous  *models.PreviousContentRef
	Records   []*models.IntelRecord
	Snapshot  *market.Snapshot
	Watchlist []*market.Quote

	WatchlistSymbols  []string
	DiscoveredSymbols []string
}

// Orchestrator runs the staged report generation. A failed stage writes a
// diagnostic string into its first section and flags the bundle; the run
// always completes with every expected section present.
type Orchestrator struct {
	generator interfaces.GenerationService
	config    common.PipelineConfig
	logger    arbor.ILogger
}

// NewOrchestrator creates a pipeline over a generation service.
func NewOrchestrator(generator interfaces.GenerationService, config common.PipelineConfig) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		config:    config,
		logger:    common.GetLogger(),
	}
}

type companyChange struct {
	Type         string `json:"type"`
	Ticker       string `json:"ticker"`
	Summary      string `json:"summary"`
	Catalyst     string `json:"catalyst"`
	ActionSignal string `json:"action_signal"`
}

type hiddenOutput struct {
	MacroChanges         []json.RawMessage `json:"macro_changes"`
	IndustryChanges      []json.RawMessage `json:"industry_changes"`
	CompanyChanges       []companyChange   `json:"company_changes"`
	FilteredNoise        []string          `json:"filtered_noise"`
	YesterdayUnavailable bool              `json:"yesterday_unavailable"`
	YesterdayNote        string            `json:"yesterday_note"`
}

var jsonBlockPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// Run executes all stages and assembles the final bundle.
func (o *Orchestrator) Run(ctx context.Context, input *Input) *models.ReportBundle {
	bundle := models.NewReportBundle(uuid.New().String(), input.TradeDate)

	newsData := formatNewsLines(input.Records, o.config.MaxPromptRecords)
	marketData := formatMarketData(input.Snapshot)
	watchlistData := formatWatchlistTable(input.Watchlist)
	secData := formatBySourceType(input.Records, models.SourceTypeFiling)
	fdaData := formatBySourceType(input.Records, models.SourceTypeRegulatory)

	previous := input.Previous
	if previous == nil {
		previous = &models.PreviousContentRef{Source: models.PreviousSourceUnavailable}
	}
	switch previous.Source {
	case models.PreviousSourceFallback:
		bundle.AddFlag(models.FlagPreviousFallback)
	case models.PreviousSourceUnavailable:
		bundle.AddFlag(models.FlagPreviousMissing)
	}

	hidden, hiddenJSON := o.runHiddenLayer(ctx, bundle, previous, newsData, secData, fdaData, marketData)

	layer0, layer1 := o.runLayer01(ctx, bundle, hidden, hiddenJSON, marketData, newsData)
	layer2, layer3 := o.runLayer23(ctx, bundle, layer0, layer1, marketData)
	layer4, _ := o.runLayer45(ctx, bundle, layer0, layer1, layer2, layer3, watchlistData, hidden.CompanyChanges)
	o.runNewsSummary(ctx, bundle, newsData, marketData)

	bundle.SetSection("market_appendix", formatMarketAppendix(input.Snapshot))

	bundle.ExtractedTickers = ExtractReportTickers(
		layer4,
		input.WatchlistSymbols,
		input.DiscoveredSymbols,
		o.config.MaxExtractedTickers,
	)

	o.logger.Info().
		Str("run_id", bundle.RunID).
		Int("sections", len(bundle.Sections)).
		Int("tickers", len(bundle.ExtractedTickers)).
		Bool("degraded", bundle.Degraded()).
		Msg("Report generation finished")

	return bundle
}

func (o *Orchestrator) runHiddenLayer(ctx context.Context, bundle *models.ReportBundle, previous *models.PreviousContentRef, newsData, secData, fdaData, marketData string) (*hiddenOutput, string) {
	yesterdayContent := previous.Content
	if !previous.Available {
		yesterdayContent = "【昨日報告不可用】\n" + previous.Note
	}
	yesterdayContent = clip(yesterdayContent, o.config.MaxPreviousChars)
	if yesterdayContent == "" {
		yesterdayContent = "無昨日報告"
	}
	if secData == "" {
		secData = "無 SEC 公告"
	}
	if fdaData == "" {
		fdaData = "無 FDA 動態"
	}

	prompt := renderPrompt(hiddenLayerPrompt, map[string]string{
		"yesterday_report": yesterdayContent,
		"news_data":        clip(newsData, 6000),
		"sec_data":         clip(secData, 2000),
		"fda_data":         clip(fdaData, 2000),
		"market_data":      marketData,
	})

	fallback := &hiddenOutput{
		YesterdayUnavailable: !previous.Available,
		YesterdayNote:        previous.Note,
	}
	fallbackJSON, _ := json.Marshal(fallback)

	text, err := o.generate(ctx, stageHidden, prompt)
	if err != nil {
		o.logger.Warn().Err(err).Str("stage", StageHiddenLayer).Msg("Stage generation failed")
		bundle.AddFlag(stageFlag(models.FlagGenerationFailure, StageHiddenLayer))
		return fallback, string(fallbackJSON)
	}

	block := jsonBlockPattern.FindString(text)
	if block == "" {
		o.logger.Warn().Str("stage", StageHiddenLayer).Msg("No JSON block in hidden layer output")
		bundle.AddFlag(stageFlag(models.FlagParseDegraded, StageHiddenLayer))
		return fallback, string(fallbackJSON)
	}

	var parsed hiddenOutput
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		o.logger.Warn().Err(err).Str("stage", StageHiddenLayer).Msg("Hidden layer JSON unparseable")
		bundle.AddFlag(stageFlag(models.FlagParseDegraded, StageHiddenLayer))
		return fallback, string(fallbackJSON)
	}

	parsed.YesterdayUnavailable = !previous.Available
	parsed.YesterdayNote = previous.Note
	return &parsed, block
}

func (o *Orchestrator) runLayer01(ctx context.Context, bundle *models.ReportBundle, hidden *hiddenOutput, hiddenJSON, marketData, newsData string) (string, string) {
	yesterdayWarning := ""
	if hidden.YesterdayUnavailable {
		note := hidden.YesterdayNote
		if note == "" {
			note = "昨日報告不可用"
		}
		yesterdayWarning = fmt.Sprintf("\n**注意**：在 Layer 0 的開頭加入以下警告：\n⚠️ %s\n", note)
	}

	prompt := renderPrompt(layer01Prompt, map[string]string{
		"yesterday_warning":   yesterdayWarning,
		"hidden_layer_output": hiddenJSON,
		"market_data":         marketData,
		"news_data":           clip(newsData, 4000),
	})

	return o.runSplitStage(ctx, bundle, stageLayer01, prompt, "生成 Layer 0-1 時發生錯誤")
}

func (o *Orchestrator) runLayer23(ctx context.Context, bundle *models.ReportBundle, layer0, layer1, marketData string) (string, string) {
	prompt := renderPrompt(layer23Prompt, map[string]string{
		"layer_0_content": layer0,
		"layer_1_content": layer1,
		"market_data":     marketData,
	})

	return o.runSplitStage(ctx, bundle, stageLayer23, prompt, "生成 Layer 2-3 時發生錯誤")
}

func (o *Orchestrator) runLayer45(ctx context.Context, bundle *models.ReportBundle, layer0, layer1, layer2, layer3, watchlistData string, changes []companyChange) (string, string) {
	changesText := "無公司變化"
	if len(changes) > 0 {
		if encoded, err := json.MarshalIndent(changes, "", "  "); err == nil {
			changesText = string(encoded)
		}
	}

	prompt := renderPrompt(layer45Prompt, map[string]string{
		"layer_0_content": layer0,
		"layer_1_content": layer1,
		"layer_2_content": layer2,
		"layer_3_content": layer3,
		"watchlist_data":  clip(watchlistData, 3000),
		"company_changes": changesText,
	})

	return o.runSplitStage(ctx, bundle, stageLayer45, prompt, "生成 Layer 4-5 時發生錯誤")
}

// runSplitStage runs a two-section stage: generate, split, record sections
// and degradation flags. On generation failure the diagnostic goes into the
// first section and the second stays empty.
func (o *Orchestrator) runSplitStage(ctx context.Context, bundle *models.ReportBundle, stage Stage, prompt, errPrefix string) (string, string) {
	first, second := stage.Sections[0], stage.Sections[1]

	text, err := o.generate(ctx, stage, prompt)
	if err != nil {
		o.logger.Warn().Err(err).Str("stage", stage.ID).Msg("Stage generation failed")
		bundle.AddFlag(stageFlag(models.FlagGenerationFailure, stage.ID))
		diagnostic := fmt.Sprintf("%s: %v", errPrefix, err)
		bundle.SetSection(first.ID, diagnostic)
		bundle.SetSection(second.ID, "")
		return diagnostic, ""
	}

	result := SplitSections(stage.ID, text, stage.Sections)
	if result.ParseDegraded {
		bundle.AddFlag(stageFlag(models.FlagParseDegraded, stage.ID))
	}
	bundle.SetSection(first.ID, result.Sections[first.ID])
	bundle.SetSection(second.ID, result.Sections[second.ID])
	return result.Sections[first.ID], result.Sections[second.ID]
}

func (o *Orchestrator) runNewsSummary(ctx context.Context, bundle *models.ReportBundle, newsData, marketData string) {
	prompt := renderPrompt(newsSummaryPrompt, map[string]string{
		"news_data":   clip(newsData, 5000),
		"market_data": marketData,
	})

	text, err := o.generate(ctx, stageNewsSummary, prompt)
	if err != nil {
		o.logger.Warn().Err(err).Str("stage", StageNewsSummary).Msg("Stage generation failed")
		bundle.AddFlag(stageFlag(models.FlagGenerationFailure, StageNewsSummary))
		bundle.SetSection("news_summary", fmt.Sprintf("無法生成新聞摘要: %v", err))
		return
	}

	bundle.SetSection("news_summary", strings.TrimSpace(text))
}

func (o *Orchestrator) generate(ctx context.Context, stage Stage, prompt string) (string, error) {
	params := o.stageParams(stage.ID)
	return o.generator.Generate(ctx, prompt, interfaces.GenerateOptions{
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
}

// stageParams returns the configured sampling parameters for a stage. Zero
// values fall through to the provider defaults.
func (o *Orchestrator) stageParams(stageID string) common.StageParams {
	switch stageID {
	case StageHiddenLayer:
		return o.config.Stages.HiddenLayer
	case StageLayer01:
		return o.config.Stages.Layer01
	case StageLayer23:
		return o.config.Stages.Layer23
	case StageLayer45:
		return o.config.Stages.Layer45
	case StageNewsSummary:
		return o.config.Stages.NewsSummary
	default:
		return common.StageParams{}
	}
}

func stageFlag(flag, stageID string) string {
	return flag + ":" + stageID
}

func formatNewsLines(records []*models.IntelRecord, max int) string {
	if max <= 0 {
		max = 50
	}
	if len(records) > max {
		records = records[:max]
	}
	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, fmt.Sprintf("- [%s] %s", record.Source, record.Title))
	}
	return strings.Join(lines, "\n")
}

func formatBySourceType(records []*models.IntelRecord, sourceType models.SourceType) string {
	var subset []*models.IntelRecord
	for _, record := range records {
		if record.SourceType == sourceType {
			subset = append(subset, record)
		}
	}
	if len(subset) == 0 {
		return ""
	}
	return aggregator.FormatForPrompt(subset, 0, false)
}

func formatMarketData(snapshot *market.Snapshot) string {
	if snapshot == nil {
		return "（無市場數據）"
	}
	return snapshot.FormatForPrompt()
}

func formatWatchlistTable(quotes []*market.Quote) string {
	if len(quotes) == 0 {
		return "無觀察名單數據"
	}

	lines := []string{
		"| 代碼 | 現價 | 漲跌幅 | RSI | 趨勢 |",
		"|------|------|--------|-----|------|",
	}
	for i, q := range quotes {
		if i >= 30 {
			break
		}
		rsi := "N/A"
		if q.RSI14 != nil {
			rsi = fmt.Sprintf("%.0f", *q.RSI14)
		}
		lines = append(lines, fmt.Sprintf("| %s | $%.2f | %+.2f%% | %s | %s |", q.Symbol, q.Price, q.ChangePercent, rsi, q.Trend))
	}
	return strings.Join(lines, "\n")
}

func formatMarketAppendix(snapshot *market.Snapshot) string {
	lines := []string{"## 📊 市場數據附錄\n", "| 指數 | 收盤價 | 漲跌幅 |", "|------|--------|--------|"}

	if snapshot != nil {
		if snapshot.SP500 != nil {
			lines = append(lines, fmt.Sprintf("| S&P 500 | %.2f | %+.2f%% |", snapshot.SP500.Price, snapshot.SP500.ChangePercent))
		}
		if snapshot.Nasdaq != nil {
			lines = append(lines, fmt.Sprintf("| NASDAQ | %.2f | %+.2f%% |", snapshot.Nasdaq.Price, snapshot.Nasdaq.ChangePercent))
		}
		if snapshot.Dow != nil {
			lines = append(lines, fmt.Sprintf("| Dow Jones | %.2f | %+.2f%% |", snapshot.Dow.Price, snapshot.Dow.ChangePercent))
		}
		if snapshot.VIX != nil {
			change := 0.0
			if snapshot.VIXChange != nil {
				change = *snapshot.VIXChange
			}
			lines = append(lines, fmt.Sprintf("| VIX | %.2f | %+.2f%% |", *snapshot.VIX, change))
		}
	}

	return strings.Join(lines, "\n")
}

func clip(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
