package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

func TestRenderMarkdown(t *testing.T) {
	bundle := models.NewReportBundle("run-1", time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC))
	bundle.SetSection("layer_0", "### Layer 0: Executive Snapshot\n市場情緒偏多")
	bundle.SetSection("layer_1", "### Layer 1: What Changed Today\n- NVDA 財報優於預期")
	bundle.SetSection("news_summary", "今日市場聚焦 AI 晶片需求。")
	bundle.SetSection("market_appendix", "## 📊 市場數據附錄\n| 指數 | 收盤價 | 漲跌幅 |")

	out := RenderMarkdown(bundle)

	assert.True(t, strings.HasPrefix(out, "# 📈 每日市場摘要 - 開盤前報告\n**📅 2025-06-17 | 週二**"))
	assert.Contains(t, out, "### Layer 0: Executive Snapshot")
	assert.Contains(t, out, "## 📰 今日新聞摘要\n\n今日市場聚焦 AI 晶片需求。")
	assert.Contains(t, out, "## 📊 市場數據附錄")

	// Sections appear in generation order, separated by rules
	l0 := strings.Index(out, "### Layer 0")
	l1 := strings.Index(out, "### Layer 1")
	news := strings.Index(out, "## 📰")
	appendix := strings.Index(out, "## 📊")
	assert.True(t, l0 < l1 && l1 < news && news < appendix)
	assert.Contains(t, out, "\n\n---\n\n")
}

func TestRenderMarkdownSkipsEmptySections(t *testing.T) {
	bundle := models.NewReportBundle("run-2", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	bundle.SetSection("layer_0", "內容")
	bundle.SetSection("layer_1", "")

	out := RenderMarkdown(bundle)

	assert.Contains(t, out, "週一")
	assert.Equal(t, 1, strings.Count(out, "---"))
}
