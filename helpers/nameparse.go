// Package helpers provides name-splitting and kana heuristics for
// bibliographic lookup data.
package helpers

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	japaneseScript = regexp.MustCompile(`[\x{3040}-\x{30FF}\x{4E00}-\x{9FFF}\x{3000}-\x{303F}]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// IsJapanese reports whether s contains any kanji or kana.
func IsJapanese(s string) bool {
	return japaneseScript.MatchString(s)
}

// SplitName splits a raw display name into surname and given name. Comma
// names split at the comma ("Grout, Donald J."); Japanese names without a
// space use a fixed-position table keyed to character count (2 → 1+1,
// 3 → 1+2, 4 and up → 2+rest); everything else splits on the first
// whitespace run. The table is a lossy guess for real Japanese surnames, so
// callers must treat the result as an editable draft, not a fact.
func SplitName(name string) (last, first string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i]), strings.TrimSpace(name[i+1:])
	}

	if IsJapanese(name) {
		n := whitespaceRun.ReplaceAllString(name, "")
		runes := []rune(n)
		cut := 2
		if len(runes) <= 3 {
			cut = 1
		}
		if cut >= len(runes) {
			return n, ""
		}
		return string(runes[:cut]), string(runes[cut:])
	}

	parts := whitespaceRun.Split(name, 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// SplitAt splits a name after the first n characters, multi-byte safe. Used
// for manual overrides of the SplitName guess.
func SplitAt(name string, n int) (last, first string) {
	name = strings.TrimSpace(name)
	if n <= 0 {
		return "", name
	}
	runes := []rune(name)
	if n >= len(runes) {
		return name, ""
	}
	return string(runes[:n]), string(runes[n:])
}

// ToHiragana normalizes a phonetic reading: katakana characters become
// hiragana and all spaces are removed. Anything outside the katakana block
// passes through.
func ToHiragana(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '　' {
			continue
		}
		if r >= 0x30A1 && r <= 0x30F4 {
			r -= 0x60
		}
		b.WriteRune(r)
	}
	return b.String()
}
