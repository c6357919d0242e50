package reference

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type collisionKey struct {
	author string
	year   Year
}

// AddYearSuffixes assigns alphabetic year suffixes ("a", "b", "c", …) to
// every group of two or more references sharing the same author key and
// year. Suffixes are assigned in Japanese collation order of the titles, so
// assignment is deterministic regardless of input order. The input slice is
// not mutated; suffixes are only meaningful relative to the whole
// collection, so this must run over the full set before rendering any of
// its members.
func AddYearSuffixes(refs []Reference) []Reference {
	out := make([]Reference, len(refs))
	copy(out, refs)

	groups := make(map[collisionKey][]int)
	for i := range out {
		out[i].YearSuffix = ""
		key := AuthorKey(out[i])
		year := out[i].EffectiveYear()
		if key == "" || year == 0 {
			continue
		}
		k := collisionKey{author: key, year: year}
		groups[k] = append(groups[k], i)
	}

	c := collate.New(language.Japanese)
	for _, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}
		sort.SliceStable(idxs, func(a, b int) bool {
			return c.CompareString(out[idxs[a]].Title, out[idxs[b]].Title) < 0
		})
		for n, i := range idxs {
			out[i].YearSuffix = string(rune('a' + n))
		}
	}

	return out
}
