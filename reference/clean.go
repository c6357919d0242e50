package reference

import "time"

// CleanStats summarizes what ValidateAndClean changed.
type CleanStats struct {
	OriginalCount      int `json:"originalCount"`
	DuplicatesRemoved  int `json:"duplicatesRemoved"`
	InvalidDataRemoved int `json:"invalidDataRemoved"`
	FinalCount         int `json:"finalCount"`
}

// ValidateAndClean drops records without an id or type, removes id
// duplicates keeping the first occurrence, and backfills missing
// createdAt/updatedAt timestamps. It returns a new slice.
func ValidateAndClean(refs []Reference) ([]Reference, CleanStats) {
	stats := CleanStats{OriginalCount: len(refs)}

	seen := make(map[string]bool, len(refs))
	cleaned := make([]Reference, 0, len(refs))
	now := time.Now().UTC().Format(time.RFC3339)

	for _, r := range refs {
		if r.ID == "" || r.Type == "" {
			stats.InvalidDataRemoved++
			continue
		}
		if seen[r.ID] {
			stats.DuplicatesRemoved++
			continue
		}
		seen[r.ID] = true

		if r.CreatedAt == "" {
			r.CreatedAt = now
		}
		if r.UpdatedAt == "" {
			r.UpdatedAt = r.CreatedAt
		}
		cleaned = append(cleaned, r)
	}

	stats.FinalCount = len(cleaned)
	return cleaned, stats
}

// IsDuplicate reports whether r already exists in refs: first by id, then by
// a content match on the first author's name, title and year, which catches
// re-imports of legacy-shaped records that were assigned fresh ids.
func IsDuplicate(refs []Reference, r Reference) bool {
	if r.ID != "" {
		for _, existing := range refs {
			if existing.ID == r.ID {
				return true
			}
		}
	}

	last, first := firstAuthorName(r)
	for _, existing := range refs {
		el, ef := firstAuthorName(existing)
		if el == last && ef == first && existing.Title == r.Title && existing.Year == r.Year {
			return true
		}
	}
	return false
}

func firstAuthorName(r Reference) (last, first string) {
	if len(r.Authors) > 0 {
		return r.Authors[0].LastName, r.Authors[0].FirstName
	}
	return r.AuthorLastName, r.AuthorFirstName
}
