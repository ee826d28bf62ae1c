package interfaces

import (
	"github.com/chiu791118/daily-report-2.0/internal/models"
)

// ReportStorage persists published reports and serves title lookups for
// previous-day resolution.
type ReportStorage interface {
	// SaveReport stores or updates a report. A report with an empty ID gets
	// one assigned.
	SaveReport(report *models.Report) error

	// FindByTitle returns the report with the given title, or (nil, nil)
	// when none exists.
	FindByTitle(title string) (*models.Report, error)

	// GetContent returns the markdown body of the report with the given
	// title, or empty string when the report is absent or empty.
	GetContent(title string) (string, error)

	Close() error
}
