package history

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/interfaces"
	"github.com/chiu791118/daily-report-2.0/internal/models"
)

// ReportTitle returns the stored title for a trade date, e.g. "250617_Pre-market".
func ReportTitle(date time.Time) string {
	return date.Format("060102") + "_Pre-market"
}

// Resolver finds the previous trading day's report content with lookback.
type Resolver struct {
	storage      interfaces.ReportStorage
	lookbackDays int
	logger       arbor.ILogger
}

// NewResolver creates a resolver over the report store. lookbackDays bounds
// how many trading days back it will search.
func NewResolver(storage interfaces.ReportStorage, lookbackDays int) *Resolver {
	if lookbackDays <= 0 {
		lookbackDays = 3
	}
	return &Resolver{
		storage:      storage,
		lookbackDays: lookbackDays,
		logger:       common.GetLogger(),
	}
}

// Resolve returns prior-day content for the given trade date. The immediately
// preceding trading day is primary; older days within the lookback window are
// fallback, with a note naming the substitute date. When every attempt comes
// up empty the result is still usable: unavailable, with an explanatory note.
// Store read errors are treated as missing content, never surfaced.
func (r *Resolver) Resolve(current time.Time) *models.PreviousContentRef {
	for lookback := 1; lookback <= r.lookbackDays; lookback++ {
		tryDate := common.PreviousTradingDay(current, lookback)
		title := ReportTitle(tryDate)

		content, err := r.storage.GetContent(title)
		if err != nil {
			r.logger.Warn().Err(err).Str("title", title).Msg("Previous report lookup failed")
			continue
		}
		if content == "" {
			r.logger.Debug().Str("title", title).Msg("No previous report for date")
			continue
		}

		if lookback == 1 {
			return &models.PreviousContentRef{
				Content:      content,
				Available:    true,
				Source:       models.PreviousSourcePrimary,
				ResolvedDate: tryDate,
			}
		}
		return &models.PreviousContentRef{
			Content:      content,
			Available:    true,
			Source:       models.PreviousSourceFallback,
			Note:         fmt.Sprintf("使用 %s 的報告作為參考（%d 個交易日前）", tryDate.Format("2006-01-02"), lookback),
			ResolvedDate: tryDate,
		}
	}

	return &models.PreviousContentRef{
		Available: false,
		Source:    models.PreviousSourceUnavailable,
		Note:      "昨日報告不可用，變化判斷基於較長時間框架",
	}
}
