package models

import (
	"strings"
	"time"
)

// SourceType categorizes where an intelligence record came from.
type SourceType string

const (
	SourceTypeNews       SourceType = "news"
	SourceTypeFiling     SourceType = "filing"
	SourceTypePaper      SourceType = "paper"
	SourceTypeTrial      SourceType = "trial"
	SourceTypeRegulatory SourceType = "regulatory"
)

// IntelRecord is the universal unit flowing through the system: one news item,
// filing, research paper, trial update or regulatory notice, normalized from
// whatever the ingestion adapter produced.
//
// RelatedTickers, RelatedEntities and Industries behave as sets: deduplicated,
// never containing empty strings, tickers uppercased. Use the Add* helpers to
// keep those invariants; direct slice writes bypass them.
type IntelRecord struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"` // "WSJ", "SEC", "arXiv", "FDA"
	SourceType  SourceType `json:"source_type"`
	URL         string     `json:"url"`
	PublishedAt time.Time  `json:"published_at"`

	Summary  string `json:"summary"`
	FullText string `json:"full_text,omitempty"`

	Category   string   `json:"category"` // "8-K", "cs.AI", "Phase 3", "Approval"
	Industries []string `json:"industries"`

	RelatedTickers  []string `json:"related_tickers"`
	RelatedEntities []string `json:"related_entities"`

	// Source-specific payload (form type, CIK, NCT id, sponsor, ...)
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// AddTickers merges ticker symbols into RelatedTickers, uppercasing and
// dropping empties and duplicates.
func (r *IntelRecord) AddTickers(tickers ...string) {
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || containsString(r.RelatedTickers, t) {
			continue
		}
		r.RelatedTickers = append(r.RelatedTickers, t)
	}
}

// AddEntities merges canonical entity names into RelatedEntities.
func (r *IntelRecord) AddEntities(entities ...string) {
	for _, e := range entities {
		e = strings.TrimSpace(e)
		if e == "" || containsString(r.RelatedEntities, e) {
			continue
		}
		r.RelatedEntities = append(r.RelatedEntities, e)
	}
}

// AddIndustries merges industry tags into Industries.
func (r *IntelRecord) AddIndustries(industries ...string) {
	for _, ind := range industries {
		ind = strings.TrimSpace(ind)
		if ind == "" || containsString(r.Industries, ind) {
			continue
		}
		r.Industries = append(r.Industries, ind)
	}
}

// HasTicker reports whether the record already references the given symbol.
func (r *IntelRecord) HasTicker(symbol string) bool {
	return containsString(r.RelatedTickers, strings.ToUpper(symbol))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
