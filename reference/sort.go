package reference

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorted returns a copy of refs in reference-list display order: Japanese
// collation of each record's phonetic reading, falling back to the author
// key when no reading is recorded.
func Sorted(refs []Reference) []Reference {
	out := make([]Reference, len(refs))
	copy(out, refs)

	c := collate.New(language.Japanese)
	sort.SliceStable(out, func(a, b int) bool {
		return c.CompareString(sortKey(out[a]), sortKey(out[b])) < 0
	})
	return out
}

func sortKey(r Reference) string {
	var authors []Author
	if r.Type == TypeTranslation {
		authors = r.OriginalAuthors
	} else {
		authors = r.Authors
	}
	if len(authors) > 0 && authors[0].Reading != "" {
		return authors[0].Reading
	}
	return AuthorKey(r)
}
