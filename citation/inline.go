package citation

import (
	"strconv"
	"strings"

	"github.com/bunken-app/bunken/reference"
)

// fullWidthSpace separates the author segment from the year in inline
// citations.
const fullWidthSpace = "　"

// FormatCitation renders the short parenthetical in-text citation,
// "(著者　年:頁)". Translations cite the original author with the original
// year parenthesized after the translation year; organization-authored
// works cite the organization verbatim. A non-empty page is appended after
// a colon with no surrounding spaces.
func FormatCitation(r reference.Reference, page string) string {
	var pageText string
	if page != "" {
		pageText = ":" + FormatCitationPageRange(page)
	}

	var author string
	var yearText string
	switch r.Type {
	case reference.TypeTranslation:
		if len(r.OriginalAuthors) > 0 {
			author = r.OriginalAuthors[0].LastName
		} else {
			author = r.OriginalAuthorLastName
		}
		yearText = yearWithSuffix(r.Year, r.YearSuffix)
		if r.OriginalYear != 0 {
			yearText += "(" + strconv.Itoa(int(r.OriginalYear)) + ")"
		}
	case reference.TypeOrganizationBook:
		author = r.Organization
		yearText = yearWithSuffix(r.EffectiveYear(), r.YearSuffix)
	default:
		author = citationAuthors(r)
		yearText = yearWithSuffix(r.EffectiveYear(), r.YearSuffix)
	}

	if yearText == "" {
		return "(" + author + pageText + ")"
	}
	return "(" + author + fullWidthSpace + yearText + pageText + ")"
}

// citationAuthors renders the author segment for ordinary types: up to
// three surnames middle-dot joined, four or more truncated to the first
// surname plus ほか. Records without an authors list fall back to the
// organization and then the composer.
func citationAuthors(r reference.Reference) string {
	if len(r.Authors) == 0 {
		if r.AuthorLastName != "" {
			return r.AuthorLastName
		}
		if r.Organization != "" {
			return r.Organization
		}
		return r.Composer
	}
	if len(r.Authors) >= etAlThreshold {
		return r.Authors[0].LastName + "ほか"
	}
	surnames := make([]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		surnames = append(surnames, a.LastName)
	}
	return strings.Join(surnames, "・")
}

func yearWithSuffix(y reference.Year, suffix string) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(int(y)) + suffix
}
