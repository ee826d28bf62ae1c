package badger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

// ReportStorage persists published reports in BadgerDB, indexed by title for
// previous-day lookups.
type ReportStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReportStorage creates report storage over an open connection.
func NewReportStorage(db *BadgerDB, logger arbor.ILogger) *ReportStorage {
	return &ReportStorage{
		db:     db,
		logger: logger,
	}
}

// SaveReport stores or updates a report. A report without an ID gets a
// report_{uuid} ID; CreatedAt is set on first save.
func (s *ReportStorage) SaveReport(report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	now := time.Now()
	if report.ID == "" {
		report.ID = fmt.Sprintf("report_%s", uuid.New().String())
		report.CreatedAt = now
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	if err := s.db.Store().Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Debug().Str("id", report.ID).Str("title", report.Title).Msg("Report saved")
	return nil
}

// FindByTitle returns the report with the given title, or (nil, nil) when no
// report has it.
func (s *ReportStorage) FindByTitle(title string) (*models.Report, error) {
	var reports []*models.Report
	err := s.db.Store().Find(&reports, badgerhold.Where("Title").Eq(title).Index("Title"))
	if err != nil {
		return nil, fmt.Errorf("failed to find report by title: %w", err)
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return reports[0], nil
}

// GetContent returns the markdown body of the titled report, or empty string
// when the report is absent.
func (s *ReportStorage) GetContent(title string) (string, error) {
	report, err := s.FindByTitle(title)
	if err != nil {
		return "", err
	}
	if report == nil {
		return "", nil
	}
	return report.ContentMarkdown, nil
}

// Close closes the underlying connection.
func (s *ReportStorage) Close() error {
	return s.db.Close()
}
