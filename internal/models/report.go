package models

import "time"

// StageResult is the parsed output of one generation stage.
// When ParseDegraded is true, exactly one section holds the entire raw text
// and every other expected section is present as an empty string.
type StageResult struct {
	StageID       string            `json:"stage_id"`
	RawText       string            `json:"raw_text"`
	Sections      map[string]string `json:"sections"`
	ParseDegraded bool              `json:"parse_degraded"`
}

// ReportBundle is the final aggregate handed to the output layer: named
// sections in declaration order, the tickers extracted from the equity stage,
// and flags naming every stage or fallback that degraded during the run.
type ReportBundle struct {
	RunID     string    `json:"run_id"`
	TradeDate time.Time `json:"trade_date"`

	SectionOrder []string          `json:"section_order"`
	Sections     map[string]string `json:"sections"`

	ExtractedTickers []string `json:"extracted_tickers"`
	DegradationFlags []string `json:"degradation_flags"`
}

// NewReportBundle creates an empty bundle for the given run.
func NewReportBundle(runID string, tradeDate time.Time) *ReportBundle {
	return &ReportBundle{
		RunID:     runID,
		TradeDate: tradeDate,
		Sections:  make(map[string]string),
	}
}

// SetSection stores a named section, recording declaration order on first
// write.
func (b *ReportBundle) SetSection(id, content string) {
	if _, ok := b.Sections[id]; !ok {
		b.SectionOrder = append(b.SectionOrder, id)
	}
	b.Sections[id] = content
}

// AddFlag records a degradation flag once.
func (b *ReportBundle) AddFlag(flag string) {
	for _, f := range b.DegradationFlags {
		if f == flag {
			return
		}
	}
	b.DegradationFlags = append(b.DegradationFlags, flag)
}

// Degraded reports whether any stage or fallback degraded during the run.
func (b *ReportBundle) Degraded() bool {
	return len(b.DegradationFlags) > 0
}

// PreviousContentSource marks the provenance of prior-day content.
type PreviousContentSource string

const (
	// PreviousSourcePrimary means the first attempted business day had content.
	PreviousSourcePrimary PreviousContentSource = "primary"
	// PreviousSourceFallback means content came from further back than the
	// immediately preceding business day.
	PreviousSourceFallback PreviousContentSource = "fallback"
	// PreviousSourceUnavailable means every attempted day was empty.
	PreviousSourceUnavailable PreviousContentSource = "unavailable"
)

// PreviousContentRef is the result of resolving prior-day report content.
// It is always usable: when Available is false, Content is empty and Note
// explains the exhausted lookback.
type PreviousContentRef struct {
	Content      string                `json:"content"`
	Available    bool                  `json:"available"`
	Source       PreviousContentSource `json:"source"`
	Note         string                `json:"note"`
	ResolvedDate time.Time             `json:"resolved_date"`
}

// Report is a stored, published report document.
type Report struct {
	ID              string    `json:"id" badgerhold:"key"` // report_{uuid}
	Title           string    `json:"title" badgerholdIndex:"Title"`
	TradeDate       time.Time `json:"trade_date"`
	ContentMarkdown string    `json:"content_markdown"`
	Tickers         []string  `json:"tickers,omitempty"`
	Degraded        bool      `json:"degraded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
