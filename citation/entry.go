package citation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bunken-app/bunken/reference"
)

// FormatReference renders the full reference-list entry for a record,
// dispatching on literature type. Missing fields degrade to empty string
// segments; an unknown type falls back to the japanese-book template.
func FormatReference(r reference.Reference) string {
	switch r.Type {
	case reference.TypeJapaneseBook:
		return japaneseBook(r)
	case reference.TypeJapaneseJournal:
		return japaneseJournal(r)
	case reference.TypeJapaneseChapter:
		return japaneseChapter(r)
	case reference.TypeOrganizationBook:
		return organizationBook(r)
	case reference.TypeEnglishBook:
		return englishBook(r)
	case reference.TypeEnglishJournal:
		return englishJournal(r)
	case reference.TypeEnglishChapter:
		return englishChapter(r)
	case reference.TypeTranslation:
		return translation(r)
	case reference.TypeDictionary:
		return dictionary(r)
	case reference.TypeScoreDomestic:
		return scoreDomestic(r)
	case reference.TypeScoreForeign:
		return scoreForeign(r)
	case reference.TypeWebsite:
		return website(r)
	case reference.TypeAudiovisual:
		return audiovisual(r)
	}
	return japaneseBook(r)
}

// jaYear renders "1996年" with any collision suffix attached to the digits,
// empty when the year is absent.
func jaYear(y reference.Year, suffix string) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(int(y)) + "年" + suffix
}

func enYear(y reference.Year, suffix string) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(int(y)) + suffix
}

func japaneseBook(r reference.Reference) string {
	authors := FormatAuthors(r.Authors, LocaleJapanese, false)
	return fmt.Sprintf("%s『%s』%s、%s。", authors, r.Title, r.Publisher, jaYear(r.Year, r.YearSuffix))
}

func japaneseJournal(r reference.Reference) string {
	authors := FormatAuthors(r.Authors, LocaleJapanese, false)
	var editorial string
	if r.EditorialOrganization != "" {
		editorial = r.EditorialOrganization + "編"
	}
	return fmt.Sprintf("%s「%s」%s『%s』%s、%s、%s頁。",
		authors, r.Title, editorial, r.JournalName,
		FormatVolumeIssue(r.Volume, r.Issue),
		jaYear(r.Year, r.YearSuffix),
		FormatPageRange(r.Pages))
}

func japaneseChapter(r reference.Reference) string {
	authors := FormatAuthors(r.Authors, LocaleJapanese, false)
	return fmt.Sprintf("%s「%s」、%s編『%s』%s、%s、%s頁。",
		authors, r.Title, r.Editors, r.BookTitle, r.Publisher,
		jaYear(r.Year, r.YearSuffix),
		FormatPageRange(r.Pages))
}

func organizationBook(r reference.Reference) string {
	return fmt.Sprintf("%s『%s』、%s。", r.Organization, r.Title, jaYear(r.Year, r.YearSuffix))
}

func englishBook(r reference.Reference) string {
	authors := FormatAuthors(r.Authors, LocaleEnglish, false)
	return fmt.Sprintf("%s. *%s*. %s: %s, %s.",
		authors, r.Title, r.PublisherLocation, r.Publisher, enYear(r.Year, r.YearSuffix))
}

func englishJournal(r reference.Reference) string {
	authors := FormatAuthors(r.Authors, LocaleEnglish, false)
	var volIssue string
	if r.Volume != "" && r.Issue != "" {
		volIssue = " " + r.Volume + "(" + r.Issue + ")"
	} else if r.Volume != "" {
		volIssue = " " + r.Volume
	}
	return fmt.Sprintf("%s, %q, *%s*%s. (%s) pp. %s.",
		authors, r.Title, r.JournalName, volIssue, enYear(r.Year, r.YearSuffix), r.Pages)
}

func englishChapter(r reference.Reference) string {
	authors := FormatAuthors(r.Authors, LocaleEnglish, false)
	return fmt.Sprintf("%s, %q, *%s*. (%s: %s, %s) pp. %s.",
		authors, r.Title, r.BookTitle, r.PublisherLocation, r.Publisher,
		enYear(r.Year, r.YearSuffix), r.Pages)
}

func translation(r reference.Reference) string {
	origJa := FormatAuthors(originalAuthors(r), LocaleJapanese, false)
	translators := FormatAuthors(r.Translators.Authors, LocaleJapanese, false)
	origEn := FormatAuthors(r.OriginalAuthorsEnglish, LocaleEnglish, false)
	return fmt.Sprintf("%s、%s訳『%s』、%s、%s。(%s. *%s*. %s: %s, %s.)",
		origJa, translators, r.Title, r.Publisher,
		jaYear(r.Year, r.YearSuffix),
		origEn, r.OriginalTitle, r.OriginalPublisherLoc, r.OriginalPublisher,
		enYear(r.OriginalYear, ""))
}

func originalAuthors(r reference.Reference) []reference.Author {
	if len(r.OriginalAuthors) > 0 {
		return r.OriginalAuthors
	}
	if r.OriginalAuthorLastName != "" || r.OriginalAuthorFirstName != "" {
		return []reference.Author{{
			LastName:  r.OriginalAuthorLastName,
			FirstName: r.OriginalAuthorFirstName,
		}}
	}
	return nil
}

func dictionary(r reference.Reference) string {
	authors := FormatAuthors(r.Authors, LocaleJapanese, false)
	var volume string
	if r.Volume != "" {
		volume = "第" + digitRun.ReplaceAllStringFunc(r.Volume, widenSingleDigit) + "巻、"
	}
	return fmt.Sprintf("%s「%s」『%s』%s%s、%s、%s頁。",
		authors, r.Title, r.DictionaryTitle, volume, r.Publisher,
		jaYear(r.Year, r.YearSuffix),
		FormatPageRange(r.Pages))
}

func scoreDomestic(r reference.Reference) string {
	var collection, editor string
	if r.CollectionTitle != "" {
		collection = " " + r.CollectionTitle
	}
	if r.Editor != "" {
		editor = " " + r.Editor
	}
	return fmt.Sprintf("%s %s%s%s %s:%s %s",
		r.Composer, r.Title, collection, editor,
		r.PublisherLocation, r.Publisher, enYear(r.Year, r.YearSuffix))
}

func scoreForeign(r reference.Reference) string {
	var collection, editor string
	if r.CollectionTitle != "" {
		collection = " " + r.CollectionTitle
	}
	if r.Editor != "" {
		editor = " " + r.Editor + "."
	}
	return fmt.Sprintf("%s. %s%s.%s %s. %s: %s, %s",
		r.Composer, r.Title, collection, editor, r.CatalogNumber,
		r.PublisherLocation, r.Publisher, enYear(r.Year, r.YearSuffix))
}

func website(r reference.Reference) string {
	return fmt.Sprintf("%sウェブサイト 「%s」 %s (%s閲覧)",
		r.Organization, r.Title, r.URL, formatAccessDate(r.AccessDate))
}

func audiovisual(r reference.Reference) string {
	var track, recording string
	if r.TrackNumber != "" {
		track = "、トラック" + r.TrackNumber
	}
	if r.RecordingYear != 0 {
		recording = fmt.Sprintf("、%d年録音", r.RecordingYear)
	}
	return fmt.Sprintf("%s作曲《%s》 %s演奏、%s: %s(%s)%s%s・%s発売。",
		r.Composer, r.Title, r.Performers, r.Label, r.CatalogNumber, r.MediaType,
		track, recording, jaYear(r.ReleaseYear, r.YearSuffix))
}

// formatAccessDate renders an access date in long-form Japanese
// ("2020年2月11日"). Unparsable input passes through untouched.
func formatAccessDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
		}
	}
	return s
}
