package validate

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns up to limit candidate names close to input, best first.
// Matching is case-insensitive and ranked in three tiers: the candidate
// contains the input (prefixes included), the input contains the candidate,
// and finally a fuzzy tier where the input is a subsequence of the candidate
// so misspellings like "Govenor" still surface "Governor". Within a tier,
// candidates are ordered by Levenshtein distance to the input.
func Suggest(input string, candidates []string, limit int) []string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		name string
		tier int
		dist int
	}

	matches := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		lc := strings.ToLower(c)
		var tier int
		switch {
		case strings.Contains(lc, in):
			tier = 0
		case strings.Contains(in, lc):
			tier = 1
		case fuzzy.MatchNormalizedFold(in, c):
			tier = 2
		default:
			continue
		}
		matches = append(matches, scored{
			name: c,
			tier: tier,
			dist: fuzzy.LevenshteinDistance(in, lc),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return matches[i].dist < matches[j].dist
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
