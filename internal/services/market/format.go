package market

import (
	"fmt"
	"strings"
)

// FormatForPrompt renders the snapshot as the market-overview block included
// in generation prompts. Missing readings are omitted rather than zero-filled.
func (s *Snapshot) FormatForPrompt() string {
	var lines []string

	if s.SP500 != nil {
		lines = append(lines, fmt.Sprintf("- S&P 500: %.2f (%+.2f%%)", s.SP500.Price, s.SP500.ChangePercent))
	}
	if s.Nasdaq != nil {
		lines = append(lines, fmt.Sprintf("- NASDAQ: %.2f (%+.2f%%)", s.Nasdaq.Price, s.Nasdaq.ChangePercent))
	}
	if s.Dow != nil {
		lines = append(lines, fmt.Sprintf("- Dow Jones: %.2f (%+.2f%%)", s.Dow.Price, s.Dow.ChangePercent))
	}
	if s.VIX != nil {
		change := 0.0
		if s.VIXChange != nil {
			change = *s.VIXChange
		}
		lines = append(lines, fmt.Sprintf("- VIX 恐慌指數: %.2f (%+.2f%%)", *s.VIX, change))
	}
	if s.Sentiment != "" {
		lines = append(lines, fmt.Sprintf("市場情緒判讀: %s", s.Sentiment))
	}

	if len(lines) == 0 {
		return "（無市場數據）"
	}
	return strings.Join(lines, "\n")
}

// FormatQuote renders one instrument's market state for prompts.
func FormatQuote(q *Quote) string {
	lines := []string{
		fmt.Sprintf("**%s - %s**", q.Symbol, q.Name),
		fmt.Sprintf("- 現價: $%.2f", q.Price),
		fmt.Sprintf("- 前收盤: $%.2f", q.PreviousClose),
		fmt.Sprintf("- 漲跌幅: %+.2f%%", q.ChangePercent),
	}

	if q.Change1W != nil {
		lines = append(lines, fmt.Sprintf("- 1週: %+.2f%%", *q.Change1W))
	}
	if q.Change1M != nil {
		lines = append(lines, fmt.Sprintf("- 1月: %+.2f%%", *q.Change1M))
	}
	if q.RSI14 != nil {
		lines = append(lines, fmt.Sprintf("- RSI(14): %.1f", *q.RSI14))
	}
	if q.VolumeRatio != nil {
		lines = append(lines, fmt.Sprintf("- 成交量比率: %.2fx", *q.VolumeRatio))
	}
	if q.Trend != "" {
		lines = append(lines, fmt.Sprintf("- 趨勢判斷: %s", q.Trend))
	}
	if len(q.SupportLevels) > 0 {
		lines = append(lines, fmt.Sprintf("- 支撐位: %s", joinLevels(q.SupportLevels)))
	}
	if len(q.ResistanceLevels) > 0 {
		lines = append(lines, fmt.Sprintf("- 壓力位: %s", joinLevels(q.ResistanceLevels)))
	}

	return strings.Join(lines, "\n")
}

// FormatWatchlistTable renders all quotes as one prompt block.
func FormatWatchlistTable(quotes []*Quote) string {
	if len(quotes) == 0 {
		return "（無觀察清單數據）"
	}
	blocks := make([]string, 0, len(quotes))
	for _, q := range quotes {
		blocks = append(blocks, FormatQuote(q))
	}
	return strings.Join(blocks, "\n\n")
}

func joinLevels(levels []float64) string {
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, fmt.Sprintf("$%.2f", l))
	}
	return strings.Join(parts, ", ")
}
