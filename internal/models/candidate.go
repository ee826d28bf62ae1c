package models

// Candidate is a watchlist instrument scored for inclusion in a report.
// Score is strictly additive: each matched trigger rule adds its weight and
// appends one reason string, in rule-evaluation order. An instrument with no
// triggered rules is never surfaced as a Candidate.
type Candidate struct {
	Symbol        string   `json:"symbol"`
	DisplayName   string   `json:"name"`
	Price         float64  `json:"price"`
	ChangePercent float64  `json:"change_percent"`
	Change1W      float64  `json:"change_1w,omitempty"`
	Change1M      float64  `json:"change_1m,omitempty"`
	RSI14         float64  `json:"rsi,omitempty"`
	Trend         string   `json:"trend,omitempty"`
	Reasons       []string `json:"reasons"`
	Score         int      `json:"score"`
}

// DiscoveryCandidate is an instrument outside the tracked watchlist that
// today's text newly implicates. Mentions counts matched records; Headlines
// keeps at most the first few originating titles.
type DiscoveryCandidate struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Headlines []string `json:"headlines"`
	Mentions  int      `json:"count"`
}
