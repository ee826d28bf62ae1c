package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/ternarybob/arbor"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/market"
)

// Service ranks instruments for report inclusion: additive trigger scoring
// over the tracked watchlist, plus event-driven discovery outside it.
type Service struct {
	config common.RankingConfig
	logger arbor.ILogger
}

// NewService creates a ranker with the given weights and thresholds.
func NewService(config common.RankingConfig) *Service {
	return &Service{
		config: config,
		logger: common.GetLogger(),
	}
}

// ScoreWatchlist evaluates every watchlist quote against the trigger rules
// and returns scored candidates, highest first. Instruments with no triggered
// rule are excluded. Rules are evaluated in a fixed order and each match
// appends one reason, so reasons always read in that order.
func (s *Service) ScoreWatchlist(quotes []*market.Quote, records []*models.IntelRecord, earningsToday []string) []*models.Candidate {
	earningsSet := make(map[string]bool, len(earningsToday))
	for _, sym := range earningsToday {
		earningsSet[sym] = true
	}

	newsSet := make(map[string]bool)
	for _, record := range records {
		for _, t := range record.RelatedTickers {
			newsSet[t] = true
		}
	}

	var candidates []*models.Candidate
	for _, q := range quotes {
		c := s.scoreQuote(q, earningsSet, newsSet)
		if c != nil {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return math.Abs(candidates[i].ChangePercent) > math.Abs(candidates[j].ChangePercent)
	})

	if max := s.config.MaxWatchlistCandidates; max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}

	return candidates
}

func (s *Service) scoreQuote(q *market.Quote, earningsSet, newsSet map[string]bool) *models.Candidate {
	var reasons []string
	score := 0

	if earningsSet[q.Symbol] {
		reasons = append(reasons, "今日財報")
		score += s.config.EarningsWeight
	}
	if newsSet[q.Symbol] {
		reasons = append(reasons, "今日新聞提及")
		score += s.config.NewsWeight
	}
	if math.Abs(q.ChangePercent) >= s.config.DailyMoveThreshold {
		reasons = append(reasons, fmt.Sprintf("單日波動 %+.2f%%", q.ChangePercent))
		score += s.config.MoveWeight
	}
	if q.Change1W != nil && math.Abs(*q.Change1W) >= s.config.WeeklyMoveThreshold {
		reasons = append(reasons, fmt.Sprintf("近一週 %+.2f%%", *q.Change1W))
		score += s.config.MoveWeight
	}
	// RSI 0 means the feed had no reading, not oversold
	if q.RSI14 != nil && *q.RSI14 != 0 {
		if *q.RSI14 >= s.config.RSIOverbought {
			reasons = append(reasons, fmt.Sprintf("RSI %.0f 超買", *q.RSI14))
			score += s.config.MoveWeight
		} else if *q.RSI14 <= s.config.RSIOversold {
			reasons = append(reasons, fmt.Sprintf("RSI %.0f 超賣", *q.RSI14))
			score += s.config.MoveWeight
		}
	}
	if q.VolumeRatio != nil && *q.VolumeRatio >= s.config.VolumeRatioTrigger {
		reasons = append(reasons, fmt.Sprintf("成交量放大 %.2fx", *q.VolumeRatio))
		score += s.config.MoveWeight
	}
	if s.nearLevel(q.Price, q.SupportLevels) {
		reasons = append(reasons, "接近支撐位")
		score += s.config.MoveWeight
	}
	if s.nearLevel(q.Price, q.ResistanceLevels) {
		reasons = append(reasons, "接近壓力位")
		score += s.config.MoveWeight
	}

	if len(reasons) == 0 {
		return nil
	}

	candidate := &models.Candidate{
		Symbol:        q.Symbol,
		DisplayName:   q.Name,
		Price:         q.Price,
		ChangePercent: q.ChangePercent,
		Trend:         q.Trend,
		Reasons:       reasons,
		Score:         score,
	}
	if q.Change1W != nil {
		candidate.Change1W = *q.Change1W
	}
	if q.Change1M != nil {
		candidate.Change1M = *q.Change1M
	}
	if q.RSI14 != nil {
		candidate.RSI14 = *q.RSI14
	}

	return candidate
}

func (s *Service) nearLevel(price float64, levels []float64) bool {
	if price == 0 || len(levels) == 0 {
		return false
	}
	for _, level := range levels {
		if level == 0 {
			continue
		}
		if math.Abs(price-level)/level <= s.config.LevelProximity {
			return true
		}
	}
	return false
}

// Symbols returns the candidate symbols as a set.
func Symbols(candidates []*models.Candidate) map[string]bool {
	set := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		set[c.Symbol] = true
	}
	return set
}
