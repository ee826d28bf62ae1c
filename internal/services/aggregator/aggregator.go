package aggregator

import (
	"context"
	"sort"

	"github.com/ternarybob/arbor"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/interfaces"
	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/resolver"
)

// Service fans in records from every registered collector, tags them against
// the entity catalog and produces prompt-ready views. One failing collector
// never fails the run; its error is logged and its records are skipped.
type Service struct {
	collectors []interfaces.Collector
	resolver   *resolver.Service
	logger     arbor.ILogger
}

// NewService creates an aggregator over the given collectors.
func NewService(collectors []interfaces.Collector, res *resolver.Service) *Service {
	return &Service{
		collectors: collectors,
		resolver:   res,
		logger:     common.GetLogger(),
	}
}

// CollectAll gathers records from every collector, tags each against the
// catalog and returns them newest first.
func (s *Service) CollectAll(ctx context.Context) []*models.IntelRecord {
	var records []*models.IntelRecord

	for _, collector := range s.collectors {
		collected, err := collector.Collect(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Str("collector", collector.Name()).Msg("Collector failed, skipping")
			continue
		}

		for _, record := range collected {
			if record == nil {
				continue
			}
			s.resolver.TagRecord(record)
			records = append(records, record)
		}

		s.logger.Info().Str("collector", collector.Name()).Int("records", len(collected)).Msg("Collector finished")
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PublishedAt.After(records[j].PublishedAt)
	})

	return records
}
