package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chiu791118/daily-report-2.0/internal/models"
	"github.com/chiu791118/daily-report-2.0/internal/services/universe"
)

var (
	tickerTokenPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)
	textNonAlnum       = regexp.MustCompile(`[^a-z0-9\s]`)
	textWhitespace     = regexp.MustCompile(`\s+`)
)

// Discover surfaces universe instruments outside the watchlist that today's
// records newly implicate: uppercase ticker tokens in titles plus normalized
// company-name substring matches over title and summary. Results are ordered
// by mention count, highest first, each carrying at most a few originating
// headlines.
func (s *Service) Discover(records []*models.IntelRecord, u *universe.Universe, watchlist map[string]bool) []*models.DiscoveryCandidate {
	if u == nil || u.Size() == 0 {
		return nil
	}

	found := make(map[string]*models.DiscoveryCandidate)

	for _, record := range records {
		matched := make(map[string]bool)

		for _, token := range tickerTokenPattern.FindAllString(record.Title, -1) {
			if u.Contains(token) {
				matched[token] = true
			}
		}

		normalized := normalizeText(record.Title + " " + record.Summary)
		for name, ticker := range u.NameEntries() {
			if name != "" && strings.Contains(normalized, name) {
				matched[ticker] = true
			}
		}

		for ticker := range matched {
			if watchlist[ticker] || !u.Contains(ticker) {
				continue
			}

			entry, ok := found[ticker]
			if !ok {
				entry = &models.DiscoveryCandidate{
					Symbol: ticker,
					Name:   u.Name(ticker),
				}
				found[ticker] = entry
			}
			entry.Mentions++
			if len(entry.Headlines) < s.config.MaxDiscoveryHeadlines {
				entry.Headlines = append(entry.Headlines, record.Title)
			}
		}
	}

	candidates := make([]*models.DiscoveryCandidate, 0, len(found))
	for _, c := range found {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Mentions != candidates[j].Mentions {
			return candidates[i].Mentions > candidates[j].Mentions
		}
		return candidates[i].Symbol < candidates[j].Symbol
	})

	if max := s.config.MaxDiscoveryCandidates; max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}

	return candidates
}

func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = textNonAlnum.ReplaceAllString(text, " ")
	text = textWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
