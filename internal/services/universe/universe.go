package universe

import (
	"regexp"
	"strings"
)

// Universe is the index of all tradable instruments known to the system,
// beyond the tracked watchlist. Discovery matches headline text against it to
// surface instruments the catalog does not track.
type Universe struct {
	tickers      map[string]bool
	tickerToName map[string]string
	nameToTicker map[string]string
}

var (
	nonAlnumPattern    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	corporateSuffixes  []*regexp.Regexp
	corporateSuffixSet = []string{
		"inc", "incorporated", "corp", "corporation", "ltd", "plc", "co",
		"company", "holdings", "holding", "group", "sa", "ag", "nv", "lp",
	}
)

func init() {
	for _, suffix := range corporateSuffixSet {
		corporateSuffixes = append(corporateSuffixes, regexp.MustCompile(`\b`+suffix+`\b`))
	}
}

// NormalizeCompanyName reduces a company name to a comparable form: lowercase,
// punctuation stripped, corporate suffixes removed, whitespace collapsed.
// "NVIDIA Corporation" and "Nvidia Corp." both normalize to "nvidia".
func NormalizeCompanyName(name string) string {
	text := strings.ToLower(name)
	text = nonAlnumPattern.ReplaceAllString(text, " ")
	for _, suffix := range corporateSuffixes {
		text = suffix.ReplaceAllString(text, " ")
	}
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Build constructs a universe from a symbol→name map. Name keys shorter than
// four characters are skipped to avoid false substring hits; the first symbol
// claiming a name wins.
func Build(tickerToName map[string]string) *Universe {
	u := &Universe{
		tickers:      make(map[string]bool, len(tickerToName)),
		tickerToName: make(map[string]string, len(tickerToName)),
		nameToTicker: make(map[string]string),
	}

	for symbol, name := range tickerToName {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		u.tickers[symbol] = true
		u.tickerToName[symbol] = name

		if name == "" {
			continue
		}
		raw := strings.ToLower(strings.TrimSpace(name))
		if len(raw) >= 4 {
			if _, ok := u.nameToTicker[raw]; !ok {
				u.nameToTicker[raw] = symbol
			}
		}
		normalized := NormalizeCompanyName(name)
		if len(normalized) >= 4 {
			if _, ok := u.nameToTicker[normalized]; !ok {
				u.nameToTicker[normalized] = symbol
			}
		}
	}

	return u
}

// Contains reports whether the symbol is part of the universe.
func (u *Universe) Contains(symbol string) bool {
	return u.tickers[strings.ToUpper(symbol)]
}

// Name returns the company name recorded for a symbol.
func (u *Universe) Name(symbol string) string {
	return u.tickerToName[strings.ToUpper(symbol)]
}

// Size returns the number of instruments indexed.
func (u *Universe) Size() int {
	return len(u.tickers)
}

// NameEntries returns the normalized-name index for substring matching.
func (u *Universe) NameEntries() map[string]string {
	return u.nameToTicker
}
