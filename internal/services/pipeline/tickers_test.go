package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractReportTickersWatchlist(t *testing.T) {
	content := "### Layer 4\n4A 觀察名單焦點\n- NVDA 財報後動能延續\n- TSLA 跌破支撐"

	tickers := ExtractReportTickers(content, []string{"NVDA", "TSLA", "AAPL"}, nil, 15)

	assert.Equal(t, []string{"NVDA", "TSLA"}, tickers)
}

func TestExtractReportTickersNoSubstringMatch(t *testing.T) {
	content := "BONVDAX 基金表現"

	tickers := ExtractReportTickers(content, []string{"NVDA"}, nil, 15)
	assert.Empty(t, tickers)
}

func TestExtractReportTickersDiscoveredAppended(t *testing.T) {
	content := "- NVDA 動能延續"

	tickers := ExtractReportTickers(content, []string{"NVDA"}, []string{"SMCI", "ARM"}, 15)

	assert.Equal(t, []string{"NVDA", "SMCI", "ARM"}, tickers)
}

func TestExtractReportTickersFrom4BSection(t *testing.T) {
	content := "### Layer 4\n4A 觀察名單焦點\n- NVDA 財報\n\n4B 新發現\n- $SMCI 伺服器需求\n- **ARM** 授權擴張\n- 【COIN】交易量回升"

	tickers := ExtractReportTickers(content, []string{"NVDA"}, nil, 15)

	assert.Contains(t, tickers, "NVDA")
	assert.Contains(t, tickers, "SMCI")
	assert.Contains(t, tickers, "ARM")
	assert.Contains(t, tickers, "COIN")
}

func TestExtractReportTickersCap(t *testing.T) {
	content := "NVDA TSLA AAPL MSFT AMZN"
	watchlist := []string{"NVDA", "TSLA", "AAPL", "MSFT", "AMZN"}

	tickers := ExtractReportTickers(content, watchlist, nil, 3)
	assert.Len(t, tickers, 3)
}

func TestExtractReportTickersDedupe(t *testing.T) {
	content := "- NVDA 財報\n\n4B 新發現\n- $NVDA 再次提及"

	tickers := ExtractReportTickers(content, []string{"NVDA"}, nil, 15)
	assert.Equal(t, []string{"NVDA"}, tickers)
}
