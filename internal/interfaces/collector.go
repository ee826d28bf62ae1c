package interfaces

import (
	"context"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

// Collector is one upstream intelligence source. Implementations live outside
// this module (RSS, SEC, FDA, trial registries); the aggregator only requires
// this surface.
type Collector interface {
	// Name identifies the source in logs and statistics.
	Name() string

	// Collect returns the records gathered for the current run. An error
	// fails only this collector; the aggregator absorbs it and continues.
	Collect(ctx context.Context) ([]*models.IntelRecord, error)
}
