package collectors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intel.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDocument(t *testing.T) {
	path := writeInput(t, `{
		"records": [
			{"title": "NVIDIA beats earnings estimates", "source": "WSJ", "source_type": "news"}
		],
		"market": {"sentiment": "risk-on"},
		"watchlist": [{"symbol": "NVDA", "name": "NVIDIA", "price": 131.2, "change_percent": 2.5}],
		"earnings_today": ["NVDA"]
	}`)

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "NVIDIA beats earnings estimates", doc.Records[0].Title)
	require.NotNil(t, doc.Market)
	assert.Equal(t, "risk-on", doc.Market.Sentiment)
	require.Len(t, doc.Watchlist, 1)
	assert.Equal(t, "NVDA", doc.Watchlist[0].Symbol)
	assert.Equal(t, []string{"NVDA"}, doc.EarningsToday)
}

func TestLoadDocumentBareArray(t *testing.T) {
	path := writeInput(t, `[{"title": "Fed holds rates", "source": "Reuters", "source_type": "news"}]`)

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "Fed holds rates", doc.Records[0].Title)
	assert.Nil(t, doc.Market)
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadDocumentMalformed(t *testing.T) {
	path := writeInput(t, `{not json`)
	_, err := LoadDocument(path)
	assert.Error(t, err)
}

func TestFileCollector(t *testing.T) {
	path := writeInput(t, `{"records": [{"title": "TSMC raises guidance", "source": "Bloomberg", "source_type": "news"}]}`)

	collector := NewFileCollector(path)
	assert.Equal(t, "file", collector.Name())

	records, err := collector.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "TSMC raises guidance", records[0].Title)
}
