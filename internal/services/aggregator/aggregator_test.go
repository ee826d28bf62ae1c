package aggregator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiu791118/daily-report-2.0/internal/interfaces"
	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/catalog"
	"github.com/chiu791118/daily-report-2.0/internal/services/resolver"
)

const aggregatorCatalog = `
entities:
  ai:
    listed:
      - name: NVIDIA
        ticker: NVDA
        aliases: ["Nvidia"]
    unlisted:
      - name: OpenAI
        aliases: []
`

type fakeCollector struct {
	name    string
	records []*models.IntelRecord
	err     error
}

func (c *fakeCollector) Name() string { return c.name }

func (c *fakeCollector) Collect(_ context.Context) ([]*models.IntelRecord, error) {
	return c.records, c.err
}

func newTestResolver(t *testing.T) *resolver.Service {
	t.Helper()
	cat, err := catalog.Parse("entities.yaml", []byte(aggregatorCatalog))
	require.NoError(t, err)
	return resolver.NewService(cat)
}

func TestCollectAllTagsAndSorts(t *testing.T) {
	older := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)

	svc := NewService([]interfaces.Collector{
		&fakeCollector{name: "wsj", records: []*models.IntelRecord{
			{Title: "Nvidia unveils new GPU", Source: "WSJ", SourceType: models.SourceTypeNews, PublishedAt: older},
		}},
		&fakeCollector{name: "sec", records: []*models.IntelRecord{
			{Title: "OpenAI partnership disclosed", Source: "SEC", SourceType: models.SourceTypeFiling, PublishedAt: newer},
		}},
	}, newTestResolver(t))

	records := svc.CollectAll(context.Background())

	require.Len(t, records, 2)
	assert.Equal(t, "OpenAI partnership disclosed", records[0].Title)
	assert.Equal(t, []string{"NVDA"}, records[1].RelatedTickers)
	assert.Contains(t, records[0].RelatedEntities, "OpenAI")
}

func TestCollectAllAbsorbsFailures(t *testing.T) {
	svc := NewService([]interfaces.Collector{
		&fakeCollector{name: "broken", err: errors.New("upstream down")},
		&fakeCollector{name: "wsj", records: []*models.IntelRecord{
			{Title: "Markets open flat", Source: "WSJ", SourceType: models.SourceTypeNews},
		}},
	}, newTestResolver(t))

	records := svc.CollectAll(context.Background())
	require.Len(t, records, 1)
}

func TestSummarize(t *testing.T) {
	records := []*models.IntelRecord{
		{Source: "WSJ", SourceType: models.SourceTypeNews, RelatedTickers: []string{"NVDA"}, RelatedEntities: []string{"NVIDIA"}, Industries: []string{"ai"}},
		{Source: "WSJ", SourceType: models.SourceTypeNews, RelatedTickers: []string{"NVDA", "TSM"}},
		{Source: "SEC", SourceType: models.SourceTypeFiling, Industries: []string{"ai"}},
	}

	stats := Summarize(records)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.BySourceType["news"])
	assert.Equal(t, 1, stats.BySourceType["filing"])
	assert.Equal(t, 2, stats.BySource["WSJ"])
	assert.Equal(t, 2, stats.ByIndustry["ai"])
	require.NotEmpty(t, stats.TopTickers)
	assert.Equal(t, NameCount{Name: "NVDA", Count: 2}, stats.TopTickers[0])
}

func TestFormatForPrompt(t *testing.T) {
	published := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	records := []*models.IntelRecord{
		{Title: "Chip demand accelerates", Source: "WSJ", SourceType: models.SourceTypeNews, Summary: "Strong datacenter orders.", PublishedAt: published, RelatedTickers: []string{"NVDA"}},
		{Title: "8-K filed", Source: "SEC", SourceType: models.SourceTypeFiling, PublishedAt: published},
	}

	out := FormatForPrompt(records, 50, false)

	assert.Contains(t, out, "## 📰 新聞 (1 則)")
	assert.Contains(t, out, "## 📋 SEC 財報 (1 則)")
	assert.Contains(t, out, "- **[06/16] [WSJ]** Chip demand accelerates [$NVDA]")
	assert.Contains(t, out, "  Strong datacenter orders.")
}

func TestFormatForPromptRespectsLimit(t *testing.T) {
	records := []*models.IntelRecord{
		{Title: "first", SourceType: models.SourceTypeNews},
		{Title: "second", SourceType: models.SourceTypeNews},
	}

	out := FormatForPrompt(records, 1, false)
	assert.True(t, strings.Contains(out, "first"))
	assert.False(t, strings.Contains(out, "second"))
}
