package services

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type OrgMatch struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Path      []int  `json:"path"`
	Distance  int    `json:"distance"`
	Reachable bool   `json:"reachable"`
}

// FindOrgs ranks org names against query, case-insensitively and ignoring
// diacritics, both for matching and for Distance. Orphans are searched too
// and come back with Reachable false. limit <= 0 returns every match.
func (r *Rollup) FindOrgs(query string, limit int) []OrgMatch {
	ids := r.forest.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		n, _ := r.forest.GetOrg(id)
		names[i] = n.Name()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	folded := foldName(query)
	for i := range ranks {
		ranks[i].Distance = fuzzy.LevenshteinDistance(folded, foldName(ranks[i].Target))
	}
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(ids[a.OriginalIndex], ids[b.OriginalIndex])
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}

	out := make([]OrgMatch, 0, len(ranks))
	for _, rank := range ranks {
		n, _ := r.forest.GetOrg(ids[rank.OriginalIndex])
		path := n.Path()
		out = append(out, OrgMatch{
			ID:        n.ID(),
			Name:      n.Name(),
			Path:      path,
			Distance:  rank.Distance,
			Reachable: r.forest.IsRoot(path[0]),
		})
	}
	return out
}

// foldName lower-cases s and strips combining marks, the same folding the
// matcher applies.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
