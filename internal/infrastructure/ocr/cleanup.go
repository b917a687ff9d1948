package ocr

import "strings"

// recognitionFixes repairs the character confusions tesseract most often
// produces on ingredient labels: bullets and semicolons standing in for the
// list separator, a pipe read from an uppercase I, and typographic quotes.
var recognitionFixes = strings.NewReplacer(
	"•", ",",
	";", ",",
	"|", "I",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// CleanRecognizedText repairs common OCR artifacts and collapses all
// whitespace runs (including newlines) to single spaces.  Pure; empty input
// yields empty output.
func CleanRecognizedText(s string) string {
	s = recognitionFixes.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
