package label

import (
	"regexp"
	"strings"
)

// Default markers for locating the ingredients block on a label. The start
// list includes OCR-damaged spellings seen in the field; the end list is
// ordered by priority, not by position in the text.
var (
	IngredientStartMarkers = []string{
		"ingredients", "ingredient", "ingedients", "ingr edients", "in gredients",
	}
	IngredientEndMarkers = []string{
		"allergen", "allergy", "nutrition", "nutritional", "nutri tion",
		"storage", "best before", "manufactured", "packed by",
	}
)

const sectionTrimCutset = " :.-"

// markerPattern compiles a marker into a case-insensitive pattern whose
// inter-word gaps tolerate arbitrary whitespace, so "nutri tion" matches
// both "nutrition" and "nutri  tion".
func markerPattern(marker string) *regexp.Regexp {
	words := strings.Fields(marker)
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, `\s*`))
}

// ExtractSection returns the substring between the earliest start-marker
// match and the chosen end marker, stripped of surrounding " :.-". End
// markers are tried in list order and the first listed marker that matches
// anywhere after the start wins, even when a later-listed marker occurs
// earlier in the text. No start marker found returns "".
func ExtractSection(text string, startKeys, endKeys []string) string {
	startAt := -1
	bodyFrom := 0
	for _, key := range startKeys {
		loc := markerPattern(key).FindStringIndex(text)
		if loc == nil {
			continue
		}
		if startAt == -1 || loc[0] < startAt {
			startAt = loc[0]
			bodyFrom = loc[1]
		}
	}
	if startAt == -1 {
		return ""
	}

	body := text[bodyFrom:]
	for _, key := range endKeys {
		if loc := markerPattern(key).FindStringIndex(body); loc != nil {
			body = body[:loc[0]]
			break
		}
	}
	return strings.Trim(body, sectionTrimCutset)
}

// ExtractIngredients applies ExtractSection with the default markers.
func ExtractIngredients(text string) string {
	return ExtractSection(text, IngredientStartMarkers, IngredientEndMarkers)
}
