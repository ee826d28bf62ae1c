package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func layerSpecs() []SectionSpec {
	return []SectionSpec{
		{ID: "layer_0", Marker: "### Layer 0"},
		{ID: "layer_1", Marker: "### Layer 1", Split: "Layer 1"},
	}
}

func TestSplitSectionsWellFormed(t *testing.T) {
	raw := "### Layer 0: Executive Snapshot\n- 結論一\n- 結論二\n\n### Layer 1: What Changed Today\n- 宏觀：延續"

	result := SplitSections(StageLayer01, raw, layerSpecs())

	assert.False(t, result.ParseDegraded)
	assert.Contains(t, result.Sections["layer_0"], "結論一")
	assert.NotContains(t, result.Sections["layer_0"], "What Changed")
	assert.Contains(t, result.Sections["layer_1"], "宏觀：延續")
}

func TestSplitSectionsCaseInsensitiveMarkers(t *testing.T) {
	raw := "### layer 0\nfoo\n### LAYER 1\nbar"

	result := SplitSections(StageLayer01, raw, layerSpecs())

	assert.False(t, result.ParseDegraded)
	assert.Equal(t, "### layer 0\nfoo", result.Sections["layer_0"])
	assert.Equal(t, "### LAYER 1\nbar", result.Sections["layer_1"])
}

func TestSplitSectionsLiteralFallback(t *testing.T) {
	// No heading markers; the bare identifier still splits the text
	raw := "重點摘要在這裡\n\nLayer 1 今日變化\n- 反轉"

	result := SplitSections(StageLayer01, raw, layerSpecs())

	assert.False(t, result.ParseDegraded)
	assert.Equal(t, "重點摘要在這裡", result.Sections["layer_0"])
	assert.Equal(t, "Layer 1 今日變化\n- 反轉", result.Sections["layer_1"])
}

func TestSplitSectionsBlobDegraded(t *testing.T) {
	raw := "模型輸出完全沒有分段結構"

	result := SplitSections(StageLayer01, raw, layerSpecs())

	assert.True(t, result.ParseDegraded)
	assert.Equal(t, raw, result.Sections["layer_0"])
	assert.Equal(t, "", result.Sections["layer_1"])
}

func TestSplitSectionsOnlyFirstMarker(t *testing.T) {
	raw := "### Layer 0\n只有第一段"

	result := SplitSections(StageLayer01, raw, layerSpecs())

	assert.False(t, result.ParseDegraded)
	assert.Equal(t, raw, result.Sections["layer_0"])
	assert.Equal(t, "", result.Sections["layer_1"])
}

func TestSplitSectionsSingleSection(t *testing.T) {
	result := SplitSections(StageNewsSummary, "  摘要內容  ", stageNewsSummary.Sections)

	assert.False(t, result.ParseDegraded)
	assert.Equal(t, "摘要內容", result.Sections["news_summary"])
}

func TestSplitSectionsAllPresent(t *testing.T) {
	result := SplitSections(StageLayer01, "anything", layerSpecs())

	_, ok0 := result.Sections["layer_0"]
	_, ok1 := result.Sections["layer_1"]
	assert.True(t, ok0)
	assert.True(t, ok1)
}
