package pipeline

// Stage identifiers, in pipeline order.
const (
	StageHiddenLayer = "hidden_layer"
	StageLayer01     = "layer_0_1"
	StageLayer23     = "layer_2_3"
	StageLayer45     = "layer_4_5"
	StageNewsSummary = "news_summary"
)

// Stage describes one generation call: the sections expected in its output.
// Sampling parameters come from config, keyed by stage ID. The hidden stage
// produces internal JSON and contributes no report section.
type Stage struct {
	ID       string
	Sections []SectionSpec
}

var stageHidden = Stage{
	ID: StageHiddenLayer,
}

var stageLayer01 = Stage{
	ID: StageLayer01,
	Sections: []SectionSpec{
		{ID: "layer_0", Marker: "### Layer 0", Split: ""},
		{ID: "layer_1", Marker: "### Layer 1", Split: "Layer 1"},
	},
}

var stageLayer23 = Stage{
	ID: StageLayer23,
	Sections: []SectionSpec{
		{ID: "layer_2", Marker: "### Layer 2", Split: ""},
		{ID: "layer_3", Marker: "### Layer 3", Split: "Layer 3"},
	},
}

var stageLayer45 = Stage{
	ID: StageLayer45,
	Sections: []SectionSpec{
		{ID: "layer_4", Marker: "### Layer 4", Split: ""},
		{ID: "layer_5", Marker: "### Layer 5", Split: "Layer 5"},
	},
}

var stageNewsSummary = Stage{
	ID: StageNewsSummary,
	Sections: []SectionSpec{
		{ID: "news_summary"},
	},
}
