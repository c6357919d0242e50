package reference

import "strings"

// Migrate upgrades a record from older single-author shapes to the current
// multi-author shape. It is idempotent: a record already in the current
// shape comes back field-for-field equal, modulo the ever-present Authors
// default of an empty slice.
func Migrate(r Reference) Reference {
	out := r

	if len(out.Authors) == 0 {
		if out.AuthorLastName != "" || out.AuthorFirstName != "" {
			out.Authors = []Author{{
				LastName:  out.AuthorLastName,
				FirstName: out.AuthorFirstName,
				Reading:   out.AuthorReading,
			}}
		} else {
			out.Authors = []Author{}
		}
	}

	if out.Type == TypeTranslation {
		if len(out.OriginalAuthors) == 0 && (out.OriginalAuthorLastName != "" || out.OriginalAuthorFirstName != "") {
			out.OriginalAuthors = []Author{{
				LastName:  out.OriginalAuthorLastName,
				FirstName: out.OriginalAuthorFirstName,
			}}
		}
		if len(out.OriginalAuthorsEnglish) == 0 && len(out.OriginalAuthors) > 0 {
			// Best-effort fallback, not a translation: reuse the Japanese
			// name parts so the parenthetical original citation is never
			// empty.
			eng := make([]Author, len(out.OriginalAuthors))
			for i, a := range out.OriginalAuthors {
				eng[i] = Author{LastName: a.LastName, FirstName: a.FirstName}
			}
			out.OriginalAuthorsEnglish = eng
		}
		if len(out.Translators.Authors) == 0 && out.Translators.Raw != "" {
			out.Translators = AuthorField{Authors: splitLegacyTranslators(out.Translators.Raw)}
		}
	}

	return out
}

// splitLegacyTranslators splits a legacy joined translator string on the
// Japanese author separator and splits the last character of each token off
// as the given name. The last-character rule is wrong for most real names of
// length > 2; it is preserved as-is for backward-compatible migration, and
// the form fields exist for manual correction.
func splitLegacyTranslators(s string) []Author {
	var authors []Author
	for _, tok := range strings.Split(s, "・") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		runes := []rune(tok)
		if len(runes) < 2 {
			authors = append(authors, Author{LastName: tok})
			continue
		}
		authors = append(authors, Author{
			LastName:  string(runes[:len(runes)-1]),
			FirstName: string(runes[len(runes)-1:]),
		})
	}
	return authors
}
