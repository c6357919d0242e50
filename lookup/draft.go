// Package lookup turns loosely-typed bibliographic API payloads into draft
// reference records.
package lookup

import (
	"github.com/bunken-app/bunken/helpers"
	"github.com/bunken-app/bunken/reference"
)

// Creator is a raw contributor as returned by a lookup provider: a display
// name plus an optional katakana/hiragana transcription.
type Creator struct {
	Name    string `json:"name"`
	Reading string `json:"reading,omitempty"`
}

// Draft holds the fields a lookup can pre-fill. It is not a Reference yet:
// creator names are unsplit and the literature type is unknown.
type Draft struct {
	Title             string    `json:"title,omitempty"`
	Creators          []Creator `json:"creators,omitempty"`
	Publisher         string    `json:"publisher,omitempty"`
	PublisherLocation string    `json:"publisherLocation,omitempty"`
	Journal           string    `json:"journal,omitempty"`
	Volume            string    `json:"volume,omitempty"`
	Issue             string    `json:"issue,omitempty"`
	Pages             string    `json:"pages,omitempty"`
	Year              int       `json:"year,omitempty"`
	ISBN              string    `json:"isbn,omitempty"`
	DOI               string    `json:"doi,omitempty"`
	Link              string    `json:"link,omitempty"`
}

// Reference converts the draft into a record of the given type. Creator
// names are split into surname and given name by heuristic, so the result
// is a starting point for editing, and it is passed through Migrate like
// any other raw record.
func (d Draft) Reference(t reference.Type) reference.Reference {
	r := reference.Reference{
		Type:  t,
		Title: d.Title,
		Year:  reference.Year(d.Year),
		ISBN:  d.ISBN,
		DOI:   d.DOI,
		Link:  d.Link,
	}

	switch t {
	case reference.TypeOrganizationBook, reference.TypeWebsite:
		r.Organization = d.Publisher
	default:
		r.Authors = d.Authors()
		r.Publisher = d.Publisher
		r.PublisherLocation = d.PublisherLocation
	}

	switch t {
	case reference.TypeJapaneseJournal, reference.TypeEnglishJournal:
		r.JournalName = d.Journal
		r.Volume = d.Volume
		r.Issue = d.Issue
		r.Pages = d.Pages
	case reference.TypeJapaneseChapter, reference.TypeEnglishChapter, reference.TypeDictionary:
		r.Pages = d.Pages
	}

	return reference.Migrate(r)
}

// Authors splits each creator's display name into an Author, normalizing
// readings to hiragana.
func (d Draft) Authors() []reference.Author {
	authors := make([]reference.Author, 0, len(d.Creators))
	for _, c := range d.Creators {
		if c.Name == "" {
			continue
		}
		last, first := helpers.SplitName(c.Name)
		authors = append(authors, reference.Author{
			LastName:  last,
			FirstName: first,
			Reading:   helpers.ToHiragana(c.Reading),
		})
	}
	return authors
}
