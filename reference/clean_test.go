package reference

import "testing"

func TestValidateAndClean(t *testing.T) {
	refs := []Reference{
		{ID: "1", Type: TypeJapaneseBook, Title: "あ"},
		{ID: "", Type: TypeJapaneseBook, Title: "no id"},
		{ID: "2", Type: "", Title: "no type"},
		{ID: "1", Type: TypeJapaneseBook, Title: "duplicate id"},
		{ID: "3", Type: TypeJapaneseJournal, CreatedAt: "2020-01-01T00:00:00Z"},
	}
	cleaned, stats := ValidateAndClean(refs)

	if len(cleaned) != 2 {
		t.Fatalf("len(cleaned) = %d, want 2", len(cleaned))
	}
	if stats.OriginalCount != 5 || stats.FinalCount != 2 {
		t.Errorf("counts = %d/%d, want 5/2", stats.OriginalCount, stats.FinalCount)
	}
	if stats.InvalidDataRemoved != 2 {
		t.Errorf("InvalidDataRemoved = %d, want 2", stats.InvalidDataRemoved)
	}
	if stats.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", stats.DuplicatesRemoved)
	}

	if cleaned[0].CreatedAt == "" || cleaned[0].UpdatedAt == "" {
		t.Error("missing timestamps were not backfilled")
	}
	if cleaned[1].CreatedAt != "2020-01-01T00:00:00Z" {
		t.Errorf("existing createdAt overwritten: %q", cleaned[1].CreatedAt)
	}
	if cleaned[1].UpdatedAt != "2020-01-01T00:00:00Z" {
		t.Errorf("updatedAt = %q, want backfilled from createdAt", cleaned[1].UpdatedAt)
	}
}

func TestIsDuplicate(t *testing.T) {
	existing := []Reference{
		{
			ID:      "1",
			Type:    TypeJapaneseBook,
			Authors: []Author{{LastName: "高橋", FirstName: "太郎"}},
			Title:   "音楽教育史",
			Year:    1996,
		},
	}

	tests := []struct {
		name string
		ref  Reference
		want bool
	}{
		{"same id", Reference{ID: "1", Title: "anything"}, true},
		{
			"same content different id",
			Reference{
				ID:      "2",
				Authors: []Author{{LastName: "高橋", FirstName: "太郎"}},
				Title:   "音楽教育史",
				Year:    1996,
			},
			true,
		},
		{
			"legacy flat author matches content",
			Reference{
				ID:              "3",
				AuthorLastName:  "高橋",
				AuthorFirstName: "太郎",
				Title:           "音楽教育史",
				Year:            1996,
			},
			true,
		},
		{
			"different year",
			Reference{
				ID:      "4",
				Authors: []Author{{LastName: "高橋", FirstName: "太郎"}},
				Title:   "音楽教育史",
				Year:    1998,
			},
			false,
		},
		{
			"different title",
			Reference{
				ID:      "5",
				Authors: []Author{{LastName: "高橋", FirstName: "太郎"}},
				Title:   "別の本",
				Year:    1996,
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(existing, tt.ref); got != tt.want {
				t.Errorf("IsDuplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}
