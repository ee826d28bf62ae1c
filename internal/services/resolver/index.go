package resolver

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/chiu791118/daily-report-2.0/internal/common"
	"github.com/chiu791118/daily-report-2.0/internal/services/catalog"
)

type tickerInfo struct {
	Name     string
	Industry string
}

type entityInfo struct {
	Industry string
	Ticker   string
	Listed   bool
}

// AliasIndex is the compiled matching vocabulary built from the entity
// catalog: alias lookup tables plus two combined regular expressions, one for
// entity aliases and one for ticker symbols.
//
// Alias matching is longest-first: aliases are sorted by length descending
// before the pattern is assembled, so "Microsoft" wins over a shorter alias
// sharing its prefix. Aliases containing CJK characters match anywhere in the
// text; Latin aliases require word boundaries. Both patterns are
// case-insensitive. Aliases shorter than two characters are discarded.
type AliasIndex struct {
	tickerInfo  map[string]tickerInfo
	entityInfo  map[string]entityInfo
	aliasEntity map[string]string
	aliasTicker map[string]string

	entityPattern *regexp.Regexp
	tickerPattern *regexp.Regexp
}

// BuildIndex compiles the matching index from a loaded catalog. Pattern
// compilation failures are logged and leave the affected pattern disabled;
// they never fail the build.
func BuildIndex(cat *catalog.Catalog) *AliasIndex {
	idx := &AliasIndex{
		tickerInfo:  make(map[string]tickerInfo),
		entityInfo:  make(map[string]entityInfo),
		aliasEntity: make(map[string]string),
		aliasTicker: make(map[string]string),
	}

	for industry, group := range cat.Entities {
		for _, company := range group.Listed {
			idx.tickerInfo[company.Ticker] = tickerInfo{Name: company.Name, Industry: industry}
			idx.entityInfo[company.Name] = entityInfo{Industry: industry, Ticker: company.Ticker, Listed: true}

			idx.addAlias(company.Name, company.Name, company.Ticker)
			idx.addAlias(company.Ticker, company.Name, company.Ticker)
			for _, alias := range company.Aliases {
				idx.addAlias(alias, company.Name, company.Ticker)
			}
		}
		for _, company := range group.Unlisted {
			idx.entityInfo[company.Name] = entityInfo{Industry: industry}

			idx.addAlias(company.Name, company.Name, "")
			for _, alias := range company.Aliases {
				idx.addAlias(alias, company.Name, "")
			}
		}
	}

	for _, person := range cat.KeyPeople {
		idx.entityInfo[person.Name] = entityInfo{}
		idx.addAlias(person.Name, person.Name, "")
		for _, alias := range person.Aliases {
			idx.addAlias(alias, person.Name, "")
		}
	}

	for _, inst := range cat.Institutions {
		idx.entityInfo[inst.Name] = entityInfo{}
		idx.addAlias(inst.Name, inst.Name, "")
		for _, alias := range inst.Aliases {
			idx.addAlias(alias, inst.Name, "")
		}
	}

	idx.compilePatterns()

	return idx
}

func (idx *AliasIndex) addAlias(alias, entity, ticker string) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if alias == "" {
		return
	}
	idx.aliasEntity[alias] = entity
	if ticker != "" {
		idx.aliasTicker[alias] = ticker
	}
}

func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

func (idx *AliasIndex) compilePatterns() {
	logger := common.GetLogger()

	aliases := make([]string, 0, len(idx.aliasEntity))
	for alias := range idx.aliasEntity {
		if utf8.RuneCountInString(alias) >= 2 {
			aliases = append(aliases, alias)
		}
	}
	// Longer aliases first so they win over shorter prefixes
	sort.Slice(aliases, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(aliases[i]), utf8.RuneCountInString(aliases[j])
		if li != lj {
			return li > lj
		}
		return aliases[i] < aliases[j]
	})

	if len(aliases) > 0 {
		parts := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			escaped := regexp.QuoteMeta(alias)
			if containsCJK(alias) {
				parts = append(parts, escaped)
			} else {
				parts = append(parts, `\b`+escaped+`\b`)
			}
		}

		pattern, err := regexp.Compile(`(?i)` + strings.Join(parts, "|"))
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to compile entity alias pattern, alias matching disabled")
		} else {
			idx.entityPattern = pattern
		}
	}

	tickers := make([]string, 0, len(idx.tickerInfo))
	for ticker := range idx.tickerInfo {
		tickers = append(tickers, ticker)
	}
	sort.Slice(tickers, func(i, j int) bool {
		if len(tickers[i]) != len(tickers[j]) {
			return len(tickers[i]) > len(tickers[j])
		}
		return tickers[i] < tickers[j]
	})

	if len(tickers) > 0 {
		escaped := make([]string, 0, len(tickers))
		for _, t := range tickers {
			escaped = append(escaped, regexp.QuoteMeta(t))
		}

		pattern, err := regexp.Compile(`(?i)(?:^|[\s$(|])(` + strings.Join(escaped, "|") + `)(?:[\s)|:,.]|$)`)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to compile ticker pattern, ticker matching disabled")
		} else {
			idx.tickerPattern = pattern
		}
	}
}

// Tickers returns all tracked ticker symbols, sorted.
func (idx *AliasIndex) Tickers() []string {
	tickers := make([]string, 0, len(idx.tickerInfo))
	for t := range idx.tickerInfo {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// TickerName returns the canonical company name for a tracked ticker.
func (idx *AliasIndex) TickerName(symbol string) (string, bool) {
	info, ok := idx.tickerInfo[strings.ToUpper(symbol)]
	return info.Name, ok
}
