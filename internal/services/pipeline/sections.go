package pipeline

import (
	"sort"
	"strings"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

// SectionSpec names one expected section of a stage's output and the heading
// marker the model was asked to emit for it.
type SectionSpec struct {
	ID     string // bundle section id, e.g. "layer_0"
	Marker string // heading the model emits, e.g. "### Layer 0"
	Split  string // literal token for the fallback split, e.g. "Layer 1"
}

// SplitSections parses raw stage output into its expected sections using
// three tiers:
//
//  1. Marker scan: locate each section's heading (case-insensitive) and slice
//     the text between consecutive headings.
//  2. Literal split: when no heading is found, split once on the second
//     section's bare identifier.
//  3. Single blob: put the entire text in the first section, leave the rest
//     empty and mark the result parse-degraded.
//
// Every expected section is always present in the result, as an empty string
// when nothing was recovered for it.
func SplitSections(stageID, raw string, specs []SectionSpec) *models.StageResult {
	result := &models.StageResult{
		StageID:  stageID,
		RawText:  raw,
		Sections: make(map[string]string, len(specs)),
	}
	for _, spec := range specs {
		result.Sections[spec.ID] = ""
	}

	if len(specs) == 0 {
		return result
	}
	if len(specs) == 1 {
		result.Sections[specs[0].ID] = strings.TrimSpace(raw)
		return result
	}

	// Tier 1: marker scan
	lower := strings.ToLower(raw)
	type located struct {
		spec SectionSpec
		pos  int
	}
	var found []located
	for _, spec := range specs {
		pos := strings.Index(lower, strings.ToLower(spec.Marker))
		if pos >= 0 {
			found = append(found, located{spec: spec, pos: pos})
		}
	}

	if len(found) > 0 {
		sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
		for i, loc := range found {
			end := len(raw)
			if i+1 < len(found) {
				end = found[i+1].pos
			}
			result.Sections[loc.spec.ID] = strings.TrimSpace(raw[loc.pos:end])
		}
		return result
	}

	// Tier 2: literal split on the second section's identifier
	second := specs[1]
	if second.Split != "" {
		if parts := strings.SplitN(raw, second.Split, 2); len(parts) == 2 {
			result.Sections[specs[0].ID] = strings.TrimSpace(parts[0])
			result.Sections[second.ID] = strings.TrimSpace(second.Split + parts[1])
			return result
		}
	}

	// Tier 3: single blob
	result.Sections[specs[0].ID] = strings.TrimSpace(raw)
	result.ParseDegraded = true
	return result
}
