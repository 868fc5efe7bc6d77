// Package arabic canonicalizes Arabic text so that speech-to-text variance
// does not break lexical matching. All functions are pure and deterministic.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// removable covers the tatweel elongation mark and the Arabic diacritic
// ranges (tashkeel, superscript alef, and the Quranic annotation block).
var removable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0640, Hi: 0x0640, Stride: 1}, // tatweel
		{Lo: 0x064B, Hi: 0x065F, Stride: 1}, // tashkeel
		{Lo: 0x0670, Hi: 0x0670, Stride: 1}, // superscript alef
		{Lo: 0x06D6, Hi: 0x06ED, Stride: 1}, // Quranic annotations
	},
}

// letterFolds maps letter variants to the base form used for matching.
// Teh marbuta folds to heh because transcribed speech rarely preserves it.
var letterFolds = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ؤ': 'و',
	'ئ': 'ي',
	'ة': 'ه',
	'ى': 'ي',
}

var normalizer = transform.Chain(
	runes.Remove(runes.In(removable)),
	runes.Map(func(r rune) rune {
		if folded, ok := letterFolds[r]; ok {
			return folded
		}
		return r
	}),
)

// FoldLetter returns the matching base form of a single letter.
func FoldLetter(r rune) rune {
	if folded, ok := letterFolds[r]; ok {
		return folded
	}
	return r
}

// IsArabicLetter reports whether r falls in the Arabic Unicode block.
func IsArabicLetter(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}

// Normalize canonicalizes text for matching: surrounding quotes are
// trimmed, elongation and diacritics removed, letter variants folded,
// punctuation replaced by spaces, and whitespace collapsed.
// Empty input yields empty output. Normalize is idempotent.
func Normalize(text string) string {
	t := strings.TrimSpace(text)
	t = strings.Trim(t, `"'`)

	t, _, _ = transform.String(normalizer, t)

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		switch {
		case IsArabicLetter(r),
			r >= '0' && r <= '9',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Compact normalizes and removes all interior whitespace. Threshold
// lessons match on the compact form so "ا ا ا" equals "ااا".
func Compact(text string) string {
	return strings.ReplaceAll(Normalize(text), " ", "")
}

// CleanPlain keeps only Arabic text and spaces, collapses whitespace,
// and caps the result at maxLen runes, preferring a word boundary.
// Diacritics survive here: prompts may demonstrate vowel marks.
// Reply text goes through this before being quoted on the wire.
func CleanPlain(text string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.TrimSpace(text) {
		if IsArabicLetter(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	t := strings.Join(strings.Fields(b.String()), " ")
	if maxLen <= 0 {
		return t
	}

	r := []rune(t)
	if len(r) <= maxLen {
		return t
	}
	cut := string(r[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		return strings.TrimSpace(cut[:i])
	}
	return cut
}
