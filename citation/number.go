// Package citation renders inline citations and reference-list entries in
// the fixed Japanese academic style.
package citation

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// FormatNumber renders n under the style's digit-width rule: single-digit
// numbers use full-width glyphs (５), anything longer stays half-width (12).
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	if n >= 0 && n <= 9 {
		return width.Widen.String(s)
	}
	return s
}

// FormatPageRange formats a page range for the reference list: every ASCII
// digit becomes its full-width glyph and every hyphen becomes the wave dash
// (45-58 → ４５〜５８). Non-digit noise in the input is left untouched.
func FormatPageRange(pages string) string {
	out := digitRun.ReplaceAllStringFunc(pages, func(run string) string {
		return width.Widen.String(run)
	})
	return strings.ReplaceAll(out, "-", "〜")
}

// FormatCitationPageRange formats a page range for an inline citation:
// hyphens are kept and each digit run goes through the single-digit
// full-width rule (45-58 stays 45-58, a lone 5 becomes ５).
func FormatCitationPageRange(pages string) string {
	return digitRun.ReplaceAllStringFunc(pages, widenSingleDigit)
}

func widenSingleDigit(run string) string {
	if len(run) == 1 {
		return width.Widen.String(run)
	}
	return run
}

// FormatVolumeIssue renders the volume/issue segment of a Japanese journal
// entry: 第{vol}-{issue}号 with both, 第{vol}巻 with volume only, 第{issue}号
// with issue only, empty with neither.
func FormatVolumeIssue(volume, issue string) string {
	v := digitRun.ReplaceAllStringFunc(volume, widenSingleDigit)
	i := digitRun.ReplaceAllStringFunc(issue, widenSingleDigit)
	switch {
	case v != "" && i != "":
		return "第" + v + "-" + i + "号"
	case v != "":
		return "第" + v + "巻"
	case i != "":
		return "第" + i + "号"
	}
	return ""
}
