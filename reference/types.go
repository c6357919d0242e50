// Package reference defines the core domain types for bibliography records.
package reference

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Type identifies the literature type of a reference. Each type carries its
// own field set and render template.
type Type string

const (
	TypeJapaneseBook     Type = "japanese-book"
	TypeJapaneseJournal  Type = "japanese-journal"
	TypeJapaneseChapter  Type = "japanese-chapter"
	TypeOrganizationBook Type = "organization-book"
	TypeEnglishBook      Type = "english-book"
	TypeEnglishJournal   Type = "english-journal"
	TypeEnglishChapter   Type = "english-chapter"
	TypeTranslation      Type = "translation"
	TypeDictionary       Type = "dictionary"
	TypeScoreDomestic    Type = "score-domestic"
	TypeScoreForeign     Type = "score-foreign"
	TypeWebsite          Type = "website"
	TypeAudiovisual      Type = "audiovisual"
)

// Types lists all known literature types in display order.
var Types = []Type{
	TypeJapaneseBook,
	TypeJapaneseJournal,
	TypeJapaneseChapter,
	TypeOrganizationBook,
	TypeEnglishBook,
	TypeEnglishJournal,
	TypeEnglishChapter,
	TypeTranslation,
	TypeDictionary,
	TypeScoreDomestic,
	TypeScoreForeign,
	TypeWebsite,
	TypeAudiovisual,
}

// TypeLabels maps each type to its Japanese display label.
var TypeLabels = map[Type]string{
	TypeJapaneseBook:     "日本語書籍",
	TypeJapaneseJournal:  "日本語雑誌論文",
	TypeJapaneseChapter:  "日本語書籍所収論文",
	TypeOrganizationBook: "団体出版書籍",
	TypeEnglishBook:      "英語書籍",
	TypeEnglishJournal:   "英語雑誌論文",
	TypeEnglishChapter:   "英語書籍所収論文",
	TypeTranslation:      "翻訳書",
	TypeDictionary:       "辞事典項目",
	TypeScoreDomestic:    "楽譜（国内）",
	TypeScoreForeign:     "楽譜（海外）",
	TypeWebsite:          "インターネット資料",
	TypeAudiovisual:      "視聴覚資料",
}

// Valid reports whether t is a known literature type.
func (t Type) Valid() bool {
	_, ok := TypeLabels[t]
	return ok
}

// Author is one contributor to a reference. Reading is a phonetic key
// (hiragana) used only for sort order, never rendered in citations.
type Author struct {
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Reading   string `json:"reading"`
}

// Year is a publication year that tolerates legacy string-encoded values in
// stored JSON ("1996" and 1996 both decode to 1996). Zero means absent.
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*y = 0
		return nil
	}
	s := string(b)
	if s[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*y = 0
			return nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Unparsable years are treated as absent rather than failing the
		// whole record.
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

// AuthorField holds a list of authors that may still be in the legacy joined
// string shape ("姓名・姓名"). Migrate splits Raw into Authors.
type AuthorField struct {
	Authors []Author
	Raw     string
}

func (f *AuthorField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &f.Raw)
	}
	return json.Unmarshal(b, &f.Authors)
}

func (f AuthorField) MarshalJSON() ([]byte, error) {
	if len(f.Authors) == 0 && f.Raw != "" {
		return json.Marshal(f.Raw)
	}
	return json.Marshal(f.Authors)
}

// IsZero lets omitzero drop the field when neither shape is present.
func (f AuthorField) IsZero() bool {
	return len(f.Authors) == 0 && f.Raw == ""
}

// Reference is a single bibliography record. Exactly one of the
// author-bearing field sets is populated per type: most types use Authors,
// organization-book and website use Organization, translation uses
// OriginalAuthors/Translators, and the score and audiovisual types use
// Composer. JSON keys match the exported record schema.
type Reference struct {
	ID    string `json:"id,omitempty"`
	Type  Type   `json:"type"`
	Title string `json:"title,omitempty"`
	Year  Year   `json:"year,omitempty"`

	Authors []Author `json:"authors"`

	// Legacy single-author shape, upgraded by Migrate.
	AuthorLastName  string `json:"authorLastName,omitempty"`
	AuthorFirstName string `json:"authorFirstName,omitempty"`
	AuthorReading   string `json:"authorReading,omitempty"`

	Publisher         string `json:"publisher,omitempty"`
	PublisherLocation string `json:"publisherLocation,omitempty"`

	// Journal articles.
	JournalName           string `json:"journalName,omitempty"`
	Volume                string `json:"volume,omitempty"`
	Issue                 string `json:"issue,omitempty"`
	Pages                 string `json:"pages,omitempty"`
	EditorialOrganization string `json:"editorialOrganization,omitempty"`

	// Chapters in edited volumes.
	Editors   string `json:"editors,omitempty"`
	BookTitle string `json:"bookTitle,omitempty"`

	// Organization-authored works and websites.
	Organization string `json:"organization,omitempty"`
	URL          string `json:"url,omitempty"`
	AccessDate   string `json:"accessDate,omitempty"`

	// Translations.
	OriginalAuthors         []Author    `json:"originalAuthors,omitempty"`
	OriginalAuthorsEnglish  []Author    `json:"originalAuthorsEnglish,omitempty"`
	Translators             AuthorField `json:"translators,omitzero"`
	OriginalTitle           string      `json:"originalTitle,omitempty"`
	OriginalPublisher       string      `json:"originalPublisher,omitempty"`
	OriginalPublisherLoc    string      `json:"originalPublisherLocation,omitempty"`
	OriginalYear            Year        `json:"originalYear,omitempty"`
	OriginalAuthorLastName  string      `json:"originalAuthorLastName,omitempty"`
	OriginalAuthorFirstName string      `json:"originalAuthorFirstName,omitempty"`

	// Dictionary entries.
	DictionaryTitle string `json:"dictionaryTitle,omitempty"`

	// Scores and audiovisual material.
	Composer        string `json:"composer,omitempty"`
	CollectionTitle string `json:"collectionTitle,omitempty"`
	Editor          string `json:"editor,omitempty"`
	CatalogNumber   string `json:"catalogNumber,omitempty"`
	Performers      string `json:"performers,omitempty"`
	Label           string `json:"label,omitempty"`
	MediaType       string `json:"mediaType,omitempty"`
	TrackNumber     string `json:"trackNumber,omitempty"`
	RecordingYear   Year   `json:"recordingYear,omitempty"`
	ReleaseYear     Year   `json:"releaseYear,omitempty"`

	ISBN string `json:"isbn,omitempty"`
	DOI  string `json:"doi,omitempty"`
	Link string `json:"link,omitempty"`

	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
	ImportedAt string `json:"importedAt,omitempty"`

	// YearSuffix disambiguates same-author same-year collisions ("a", "b",
	// …). Computed by AddYearSuffixes on every render pass, never persisted.
	YearSuffix string `json:"-"`
}

// EffectiveYear returns the year used for citations and collision grouping:
// Year when set, otherwise ReleaseYear (audiovisual records carry only a
// release year).
func (r Reference) EffectiveYear() Year {
	if r.Year != 0 {
		return r.Year
	}
	return r.ReleaseYear
}

// AuthorKey returns the string that identifies the responsible party for
// sorting and year-suffix grouping: the first author's last name for
// ordinary types, the organization for organization-authored works and
// websites, the first original author for translations, and the composer as
// a last resort.
func AuthorKey(r Reference) string {
	var key string
	switch r.Type {
	case TypeTranslation:
		if len(r.OriginalAuthors) > 0 {
			key = r.OriginalAuthors[0].LastName
		} else {
			key = r.OriginalAuthorLastName
		}
	case TypeOrganizationBook, TypeWebsite:
		key = r.Organization
	default:
		if len(r.Authors) > 0 {
			key = r.Authors[0].LastName
		} else {
			key = r.AuthorLastName
		}
	}
	if key == "" {
		key = r.Composer
	}
	return key
}
