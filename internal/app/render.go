package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "週日",
	time.Monday:    "週一",
	time.Tuesday:   "週二",
	time.Wednesday: "週三",
	time.Thursday:  "週四",
	time.Friday:    "週五",
	time.Saturday:  "週六",
}

// RenderMarkdown assembles the bundle's sections into the final report
// document, in generation order, separated by horizontal rules.
func RenderMarkdown(bundle *models.ReportBundle) string {
	var parts []string

	header := fmt.Sprintf("# 📈 每日市場摘要 - 開盤前報告\n**📅 %s | %s**",
		bundle.TradeDate.Format("2006-01-02"), weekdayNames[bundle.TradeDate.Weekday()])
	parts = append(parts, header)

	for _, name := range bundle.SectionOrder {
		content := strings.TrimSpace(bundle.Sections[name])
		if content == "" {
			continue
		}
		if name == "news_summary" {
			content = "## 📰 今日新聞摘要\n\n" + content
		}
		parts = append(parts, content)
	}

	return strings.Join(parts, "\n\n---\n\n") + "\n"
}
