package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/market"
)

func newTestService() *Service {
	return NewService(common.NewDefaultConfig().Ranking)
}

func TestScoreWatchlistEarningsAndRSI(t *testing.T) {
	svc := newTestService()

	quotes := []*market.Quote{
		{Symbol: "NVDA", Name: "NVIDIA", Price: 892.5, ChangePercent: 1.2, RSI14: market.Float(75)},
	}

	candidates := svc.ScoreWatchlist(quotes, nil, []string{"NVDA"})

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, 4, c.Score)
	assert.Equal(t, []string{"今日財報", "RSI 75 超買"}, c.Reasons)
}

func TestScoreWatchlistAllTriggers(t *testing.T) {
	svc := newTestService()

	record := &models.IntelRecord{Title: "x"}
	record.AddTickers("TSLA")

	quotes := []*market.Quote{
		{
			Symbol:           "TSLA",
			Name:             "Tesla",
			Price:            200,
			ChangePercent:    -3.1,
			Change1W:         market.Float(-6.4),
			RSI14:            market.Float(28),
			VolumeRatio:      market.Float(2.1),
			SupportLevels:    []float64{198},
			ResistanceLevels: []float64{240},
		},
	}

	candidates := svc.ScoreWatchlist(quotes, []*models.IntelRecord{record}, []string{"TSLA"})

	require.Len(t, candidates, 1)
	c := candidates[0]
	// 3 + 2 + 1 + 1 + 1 + 1 + 1, resistance not near
	assert.Equal(t, 10, c.Score)
	assert.Equal(t, []string{
		"今日財報",
		"今日新聞提及",
		"單日波動 -3.10%",
		"近一週 -6.40%",
		"RSI 28 超賣",
		"成交量放大 2.10x",
		"接近支撐位",
	}, c.Reasons)
}

func TestScoreWatchlistZeroTriggerExcluded(t *testing.T) {
	svc := newTestService()

	quotes := []*market.Quote{
		{Symbol: "KO", Name: "Coca-Cola", Price: 60, ChangePercent: 0.3, RSI14: market.Float(55)},
	}

	candidates := svc.ScoreWatchlist(quotes, nil, nil)
	assert.Empty(t, candidates)
}

func TestScoreWatchlistRSIZeroTreatedAsMissing(t *testing.T) {
	svc := newTestService()

	// A zero-filled feed must not read as oversold
	quotes := []*market.Quote{
		{Symbol: "ZRO", Name: "Zero Corp", Price: 50, ChangePercent: 0.1, RSI14: market.Float(0)},
	}
	assert.Empty(t, svc.ScoreWatchlist(quotes, nil, nil))

	// With another trigger present, still no RSI reason
	quotes[0].ChangePercent = 2.4
	candidates := svc.ScoreWatchlist(quotes, nil, nil)
	require.Len(t, candidates, 1)
	assert.Equal(t, []string{"單日波動 +2.40%"}, candidates[0].Reasons)
}

func TestScoreWatchlistOrdering(t *testing.T) {
	svc := newTestService()

	quotes := []*market.Quote{
		{Symbol: "AAA", Price: 10, ChangePercent: 2.5},                          // score 1, |2.5|
		{Symbol: "BBB", Price: 10, ChangePercent: -4.0},                         // score 1, |4.0|
		{Symbol: "CCC", Price: 10, ChangePercent: 2.1, RSI14: market.Float(80)}, // score 2
	}

	candidates := svc.ScoreWatchlist(quotes, nil, nil)

	require.Len(t, candidates, 3)
	assert.Equal(t, "CCC", candidates[0].Symbol)
	assert.Equal(t, "BBB", candidates[1].Symbol)
	assert.Equal(t, "AAA", candidates[2].Symbol)
}

func TestScoreWatchlistNearLevelBoundary(t *testing.T) {
	svc := newTestService()

	// 102 vs support 100: |102-100|/100 = 0.02, exactly at the threshold
	quotes := []*market.Quote{
		{Symbol: "EDGE", Price: 102, ChangePercent: 0, SupportLevels: []float64{100}},
	}
	candidates := svc.ScoreWatchlist(quotes, nil, nil)
	require.Len(t, candidates, 1)
	assert.Equal(t, []string{"接近支撐位"}, candidates[0].Reasons)

	// 103 vs 100 is outside
	quotes[0].Price = 103
	assert.Empty(t, svc.ScoreWatchlist(quotes, nil, nil))
}

func TestScoreWatchlistCap(t *testing.T) {
	cfg := common.NewDefaultConfig().Ranking
	cfg.MaxWatchlistCandidates = 2
	svc := NewService(cfg)

	quotes := []*market.Quote{
		{Symbol: "A", Price: 1, ChangePercent: 2.1},
		{Symbol: "B", Price: 1, ChangePercent: 2.2},
		{Symbol: "C", Price: 1, ChangePercent: 2.3},
	}

	candidates := svc.ScoreWatchlist(quotes, nil, nil)
	assert.Len(t, candidates, 2)
}
