package market

// IndexQuote is a market-index level reading.
type IndexQuote struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	ChangePercent float64  `json:"change_percent"`
	Change1W      *float64 `json:"change_1w,omitempty"`
}

// Quote is the per-instrument market state used for scoring and prompt
// assembly. Optional indicators are pointers: nil means the upstream feed had
// no value, which is different from zero.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	ChangePercent float64 `json:"change_percent"`

	Change1W    *float64 `json:"change_1w,omitempty"`
	Change1M    *float64 `json:"change_1m,omitempty"`
	RSI14       *float64 `json:"rsi_14,omitempty"`
	VolumeRatio *float64 `json:"volume_ratio,omitempty"`

	Volume    int64 `json:"volume,omitempty"`
	AvgVolume int64 `json:"avg_volume,omitempty"`

	SupportLevels    []float64 `json:"support_levels,omitempty"`
	ResistanceLevels []float64 `json:"resistance_levels,omitempty"`

	Trend string `json:"trend,omitempty"` // "上升", "下降", "盤整"
}

// Snapshot is the pre-market view of the broad market handed to prompts.
type Snapshot struct {
	SP500  *IndexQuote `json:"sp500,omitempty"`
	Nasdaq *IndexQuote `json:"nasdaq,omitempty"`
	Dow    *IndexQuote `json:"dow,omitempty"`

	VIX       *float64 `json:"vix,omitempty"`
	VIXChange *float64 `json:"vix_change,omitempty"`

	Sentiment string `json:"sentiment,omitempty"`
}

// Float returns a float pointer, for building quotes in tests and adapters.
func Float(v float64) *float64 { return &v }
