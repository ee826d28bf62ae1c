package aggregator

import (
	"sort"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

// NameCount pairs a name with its occurrence count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes one collection run.
type Stats struct {
	Total        int            `json:"total"`
	BySourceType map[string]int `json:"by_source_type"`
	BySource     map[string]int `json:"by_source"`
	ByIndustry   map[string]int `json:"by_industry"`
	TopEntities  []NameCount    `json:"top_entities"`
	TopTickers   []NameCount    `json:"top_tickers"`
}

const topCount = 20

// Summarize computes run statistics over collected records.
func Summarize(records []*models.IntelRecord) *Stats {
	stats := &Stats{
		Total:        len(records),
		BySourceType: make(map[string]int),
		BySource:     make(map[string]int),
		ByIndustry:   make(map[string]int),
	}

	entityCounts := make(map[string]int)
	tickerCounts := make(map[string]int)

	for _, record := range records {
		stats.BySourceType[string(record.SourceType)]++
		stats.BySource[record.Source]++
		for _, ind := range record.Industries {
			stats.ByIndustry[ind]++
		}
		for _, entity := range record.RelatedEntities {
			entityCounts[entity]++
		}
		for _, ticker := range record.RelatedTickers {
			tickerCounts[ticker]++
		}
	}

	stats.TopEntities = topN(entityCounts, topCount)
	stats.TopTickers = topN(tickerCounts, topCount)

	return stats
}

func topN(counts map[string]int, n int) []NameCount {
	items := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		items = append(items, NameCount{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}
