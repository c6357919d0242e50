package citation

import (
	"strings"

	"github.com/bunken-app/bunken/reference"
)

// Locale selects between the Japanese and English name conventions.
type Locale string

const (
	LocaleJapanese Locale = "ja"
	LocaleEnglish  Locale = "en"
)

// etAlThreshold is the author count at which name lists truncate to the
// first author plus "ほか" / "et al.". Three authors are still listed in
// full; four are not. Inline citations use the same boundary.
const etAlThreshold = 4

// FormatAuthors renders an author list for the given locale. With
// forCitation set it returns only the first author's surname. Otherwise
// lists of up to three authors are written in full (Japanese: 姓名
// middle-dot joined; English: "Last, First" then "First Last",
// comma-joined), and longer lists truncate to the first author.
func FormatAuthors(authors []reference.Author, locale Locale, forCitation bool) string {
	if len(authors) == 0 {
		return ""
	}
	if forCitation {
		return authors[0].LastName
	}

	if len(authors) >= etAlThreshold {
		if locale == LocaleEnglish {
			return invertedName(authors[0]) + ", et al."
		}
		return authors[0].LastName + authors[0].FirstName + "ほか"
	}

	if locale == LocaleEnglish {
		parts := make([]string, 0, len(authors))
		parts = append(parts, invertedName(authors[0]))
		for _, a := range authors[1:] {
			parts = append(parts, directName(a))
		}
		return strings.Join(parts, ", ")
	}

	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		parts = append(parts, a.LastName+a.FirstName)
	}
	return strings.Join(parts, "・")
}

func invertedName(a reference.Author) string {
	switch {
	case a.LastName == "":
		return a.FirstName
	case a.FirstName == "":
		return a.LastName
	}
	return a.LastName + ", " + a.FirstName
}

func directName(a reference.Author) string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
