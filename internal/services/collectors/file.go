package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/market"
)

// Document is the on-disk shape of one run's collected inputs: intelligence
// records plus the market data gathered alongside them. External collectors
// write this file; the pipeline consumes it.
type Document struct {
	Records       []*models.IntelRecord `json:"records"`
	Market        *market.Snapshot      `json:"market,omitempty"`
	Watchlist     []*market.Quote       `json:"watchlist,omitempty"`
	EarningsToday []string              `json:"earnings_today,omitempty"`
}

// LoadDocument reads an input document from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		// A bare record array is also accepted
		var records []*models.IntelRecord
		if arrErr := json.Unmarshal(data, &records); arrErr != nil {
			return nil, fmt.Errorf("failed to parse input file %s: %w", path, err)
		}
		doc = Document{Records: records}
	}

	return &doc, nil
}

// FileCollector serves records from an input document on disk.
type FileCollector struct {
	path string
}

// NewFileCollector creates a collector over the given input file.
func NewFileCollector(path string) *FileCollector {
	return &FileCollector{path: path}
}

// Name identifies the source in logs and statistics.
func (c *FileCollector) Name() string {
	return "file"
}

// Collect returns the records from the input document.
func (c *FileCollector) Collect(ctx context.Context) ([]*models.IntelRecord, error) {
	doc, err := LoadDocument(c.path)
	if err != nil {
		return nil, err
	}
	return doc.Records, nil
}
