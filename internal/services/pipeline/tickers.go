package pipeline

import "regexp"

var (
	section4BPattern = regexp.MustCompile(`(?is)4B[:\s]*新發現.*`)

	discoveredTickerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$([A-Z]{1,5})\b`),     // $AAPL
		regexp.MustCompile(`\(([A-Z]{1,5})\)`),     // (AAPL)
		regexp.MustCompile(`\*\*([A-Z]{1,5})\*\*`), // **AAPL**
		regexp.MustCompile(`【([A-Z]{1,5})】`),       // 【AAPL】
	}
)

// ExtractReportTickers pulls ticker symbols out of the equity-signals layer.
// Only watchlist symbols that actually appear in the content qualify, plus
// symbols explicitly surfaced in the 4B discovery subsection. At most max
// symbols are returned, watchlist first.
func ExtractReportTickers(layer4Content string, watchlistSymbols []string, discoveredSymbols []string, max int) []string {
	var tickers []string
	seen := make(map[string]bool)

	for _, symbol := range watchlistSymbols {
		if symbol == "" || seen[symbol] {
			continue
		}
		if wordBoundaryMatch(layer4Content, symbol) {
			tickers = append(tickers, symbol)
			seen[symbol] = true
		}
	}

	for _, symbol := range discoveredSymbols {
		if symbol == "" || seen[symbol] {
			continue
		}
		tickers = append(tickers, symbol)
		seen[symbol] = true
	}

	// No discovery list supplied: mine the 4B subsection directly
	if len(discoveredSymbols) == 0 {
		if section := section4BPattern.FindString(layer4Content); section != "" {
			for _, pattern := range discoveredTickerPatterns {
				for _, m := range pattern.FindAllStringSubmatch(section, -1) {
					symbol := m[1]
					if len(symbol) >= 2 && !seen[symbol] {
						tickers = append(tickers, symbol)
						seen[symbol] = true
					}
				}
			}
		}
	}

	if max > 0 && len(tickers) > max {
		tickers = tickers[:max]
	}
	return tickers
}

func wordBoundaryMatch(text, symbol string) bool {
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(symbol) + `\b`)
	if err != nil {
		return false
	}
	return pattern.MatchString(text)
}
