package resolver

import (
	"sort"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/catalog"
)

// Resolution is the outcome of matching one text against the catalog.
// All three slices are deduplicated and sorted.
type Resolution struct {
	Tickers    []string
	Entities   []string
	Industries []string
}

// Service resolves free text against the entity catalog.
type Service struct {
	index  *AliasIndex
	logger arbor.ILogger
}

// NewService builds a resolver from a loaded catalog.
func NewService(cat *catalog.Catalog) *Service {
	return &Service{
		index:  BuildIndex(cat),
		logger: common.GetLogger(),
	}
}

// Index exposes the compiled alias index for callers that need the ticker
// vocabulary (ranking, extraction).
func (s *Service) Index() *AliasIndex {
	return s.index
}

// Resolve finds every tracked ticker, entity and industry referenced in text.
// Empty text yields an empty resolution. A matched ticker contributes its
// entity and industry; a matched alias of a listed company contributes its
// ticker.
func (s *Service) Resolve(text string) Resolution {
	tickers := make(map[string]bool)
	entities := make(map[string]bool)
	industries := make(map[string]bool)

	if text == "" {
		return Resolution{}
	}

	if s.index.tickerPattern != nil {
		for _, m := range s.index.tickerPattern.FindAllStringSubmatch(text, -1) {
			symbol := strings.ToUpper(m[1])
			info, ok := s.index.tickerInfo[symbol]
			if !ok {
				continue
			}
			tickers[symbol] = true
			entities[info.Name] = true
			industries[info.Industry] = true
		}
	}

	if s.index.entityPattern != nil {
		lower := strings.ToLower(text)
		for _, m := range s.index.entityPattern.FindAllString(lower, -1) {
			entity, ok := s.index.aliasEntity[m]
			if !ok {
				continue
			}
			entities[entity] = true

			if ticker, ok := s.index.aliasTicker[m]; ok {
				tickers[ticker] = true
			}
			if info, ok := s.index.entityInfo[entity]; ok && info.Industry != "" {
				industries[info.Industry] = true
			}
		}
	}

	return Resolution{
		Tickers:    sortedKeys(tickers),
		Entities:   sortedKeys(entities),
		Industries: sortedKeys(industries),
	}
}

// TagRecord resolves a record's title and summary and merges the matches into
// its related-ticker, entity and industry sets.
func (s *Service) TagRecord(record *models.IntelRecord) {
	res := s.Resolve(record.Title + " " + record.Summary)
	record.AddTickers(res.Tickers...)
	record.AddEntities(res.Entities...)
	record.AddIndustries(res.Industries...)
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
