package badger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/models"
)

func newTestStorage(t *testing.T) *ReportStorage {
	t.Helper()

	db, err := NewBadgerDB(common.GetLogger(), &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "data"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewReportStorage(db, common.GetLogger())
}

func TestSaveReportAssignsID(t *testing.T) {
	storage := newTestStorage(t)

	report := &models.Report{
		Title:           "250617_Pre-market",
		TradeDate:       time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		ContentMarkdown: "### Layer 0\n內容",
	}
	require.NoError(t, storage.SaveReport(report))

	assert.Contains(t, report.ID, "report_")
	assert.False(t, report.CreatedAt.IsZero())
	assert.False(t, report.UpdatedAt.IsZero())
}

func TestFindByTitle(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveReport(&models.Report{
		Title:           "250617_Pre-market",
		ContentMarkdown: "今日內容",
		Tickers:         []string{"NVDA"},
	}))

	found, err := storage.FindByTitle("250617_Pre-market")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "今日內容", found.ContentMarkdown)
	assert.Equal(t, []string{"NVDA"}, found.Tickers)

	missing, err := storage.FindByTitle("250618_Pre-market")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveReportUpsert(t *testing.T) {
	storage := newTestStorage(t)

	report := &models.Report{Title: "250617_Pre-market", ContentMarkdown: "v1"}
	require.NoError(t, storage.SaveReport(report))

	report.ContentMarkdown = "v2"
	require.NoError(t, storage.SaveReport(report))

	found, err := storage.FindByTitle("250617_Pre-market")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "v2", found.ContentMarkdown)
	assert.Equal(t, report.ID, found.ID)
}

func TestGetContent(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveReport(&models.Report{
		Title:           "250616_Pre-market",
		ContentMarkdown: "週一報告",
	}))

	content, err := storage.GetContent("250616_Pre-market")
	require.NoError(t, err)
	assert.Equal(t, "週一報告", content)

	content, err = storage.GetContent("250617_Pre-market")
	require.NoError(t, err)
	assert.Equal(t, "", content)
}
