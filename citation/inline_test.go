package citation

import (
	"testing"

	"github.com/bunken-app/bunken/reference"
)

func TestFormatCitation(t *testing.T) {
	takahashi := reference.Reference{
		Type:    reference.TypeJapaneseBook,
		Authors: []reference.Author{{LastName: "高橋", FirstName: "太郎"}},
		Year:    1996,
	}

	tests := []struct {
		name string
		ref  reference.Reference
		page string
		want string
	}{
		{"plain", takahashi, "", "(高橋　1996)"},
		{"single page", takahashi, "129", "(高橋　1996:129)"},
		{"page range keeps hyphen", takahashi, "45-58", "(高橋　1996:45-58)"},
		{"single digit page widens", takahashi, "5", "(高橋　1996:５)"},
		{
			"two authors",
			reference.Reference{
				Type: reference.TypeJapaneseJournal,
				Authors: []reference.Author{
					{LastName: "高橋", FirstName: "太郎"},
					{LastName: "鈴木", FirstName: "花子"},
				},
				Year: 1998,
			},
			"",
			"(高橋・鈴木　1998)",
		},
		{
			"four authors truncate",
			reference.Reference{
				Type: reference.TypeJapaneseBook,
				Authors: []reference.Author{
					{LastName: "高橋"}, {LastName: "鈴木"}, {LastName: "田中"}, {LastName: "佐藤"},
				},
				Year: 2001,
			},
			"",
			"(高橋ほか　2001)",
		},
		{
			"year suffix",
			func() reference.Reference {
				r := takahashi
				r.YearSuffix = "a"
				return r
			}(),
			"",
			"(高橋　1996a)",
		},
		{
			"translation cites both years",
			reference.Reference{
				Type:            reference.TypeTranslation,
				OriginalAuthors: []reference.Author{{LastName: "グラウト", FirstName: "ドナルド・J"}},
				Year:            1969,
				OriginalYear:    1960,
			},
			"",
			"(グラウト　1969(1960))",
		},
		{
			"organization book",
			reference.Reference{
				Type:         reference.TypeOrganizationBook,
				Organization: "文部科学省",
				Year:         2017,
			},
			"",
			"(文部科学省　2017)",
		},
		{
			"legacy single author",
			reference.Reference{
				Type:           reference.TypeJapaneseBook,
				AuthorLastName: "高橋",
				Year:           1996,
			},
			"",
			"(高橋　1996)",
		},
		{
			"audiovisual uses composer and release year",
			reference.Reference{
				Type:        reference.TypeAudiovisual,
				Composer:    "ラヴェル",
				ReleaseYear: 1997,
			},
			"",
			"(ラヴェル　1997)",
		},
		{
			"no year omits the separator",
			reference.Reference{
				Type:         reference.TypeWebsite,
				Organization: "文化庁",
			},
			"",
			"(文化庁)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCitation(tt.ref, tt.page); got != tt.want {
				t.Errorf("FormatCitation() = %q, want %q", got, tt.want)
			}
		})
	}
}
