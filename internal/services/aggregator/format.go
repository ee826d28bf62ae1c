package aggregator

import (
	"fmt"
	"strings"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

var sourceTypeLabels = map[models.SourceType]string{
	models.SourceTypeNews:       "📰 新聞",
	models.SourceTypeFiling:     "📋 SEC 財報",
	models.SourceTypePaper:      "📄 研究論文",
	models.SourceTypeTrial:      "💊 臨床試驗",
	models.SourceTypeRegulatory: "🏥 監管公告",
}

var sourceTypeOrder = []models.SourceType{
	models.SourceTypeNews,
	models.SourceTypeFiling,
	models.SourceTypePaper,
	models.SourceTypeTrial,
	models.SourceTypeRegulatory,
}

const maxContentChars = 300

// FormatForPrompt renders records grouped by source type for inclusion in a
// generation prompt. At most maxRecords records are included; summaries are
// clipped to keep the prompt bounded.
func FormatForPrompt(records []*models.IntelRecord, maxRecords int, includeFullText bool) string {
	if maxRecords > 0 && len(records) > maxRecords {
		records = records[:maxRecords]
	}

	byType := make(map[models.SourceType][]*models.IntelRecord)
	var extraTypes []models.SourceType
	for _, record := range records {
		if _, known := sourceTypeLabels[record.SourceType]; !known {
			if _, seen := byType[record.SourceType]; !seen {
				extraTypes = append(extraTypes, record.SourceType)
			}
		}
		byType[record.SourceType] = append(byType[record.SourceType], record)
	}

	var lines []string
	order := append(append([]models.SourceType{}, sourceTypeOrder...), extraTypes...)
	for _, st := range order {
		group := byType[st]
		if len(group) == 0 {
			continue
		}

		label, ok := sourceTypeLabels[st]
		if !ok {
			label = string(st)
		}
		lines = append(lines, fmt.Sprintf("\n## %s (%d 則)\n", label, len(group)))

		for _, record := range group {
			lines = append(lines, formatRecord(record, includeFullText))
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}

func formatRecord(record *models.IntelRecord, includeFullText bool) string {
	var tags []string
	if tickers := record.RelatedTickers; len(tickers) > 0 {
		if len(tickers) > 3 {
			tickers = tickers[:3]
		}
		tags = append(tags, "$"+strings.Join(tickers, ", $"))
	}
	entities := record.RelatedEntities
	if len(entities) > 3 {
		entities = entities[:3]
	}
	tags = append(tags, entities...)
	if len(tags) > 4 {
		tags = tags[:4]
	}

	tagStr := ""
	if len(tags) > 0 {
		tagStr = fmt.Sprintf(" [%s]", strings.Join(tags, ", "))
	}

	content := record.Summary
	if includeFullText && record.FullText != "" {
		content = record.FullText
	}
	if runes := []rune(content); len(runes) > maxContentChars {
		content = string(runes[:maxContentChars]) + "..."
	}

	line := fmt.Sprintf("- **[%s] [%s]** %s%s", record.PublishedAt.Format("01/02"), record.Source, record.Title, tagStr)
	if content != "" {
		line += "\n  " + content
	}
	return line
}
