// Package label turns raw label text into structured ingredient data: text
// normalization, ingredients-section extraction, and tokenization into
// ordered ingredient entries. All functions are pure and allocation-light;
// the package performs no I/O and holds no mutable state.
package label

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw OCR or database text for downstream matching:
// Unicode NFC composition, typographic dash variants (U+2010..U+2015) folded
// to ASCII hyphen, and all whitespace runs (including newlines) collapsed to
// a single space. The result is trimmed; empty input yields "".
func Normalize(text string) string {
	text = norm.NFC.String(text)
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		case r >= '‐' && r <= '―':
			b.WriteRune('-')
			prevSpace = false
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
