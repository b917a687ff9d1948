// Package allergen finds declared allergens in label text by matching a fixed
// vocabulary against explicit allergen clauses and "contains ..." statements.
package allergen

import (
	"regexp"
	"sort"
	"strings"
)

// vocabulary is the fixed allergen term set. Multi-word terms only match in
// the "contains" pass; clause tokens are split on whitespace and cannot span
// words.
var vocabulary = map[string]struct{}{
	"milk": {}, "lactose": {}, "butter": {}, "ghee": {},
	"soy": {}, "soya": {},
	"wheat": {}, "gluten": {}, "barley": {}, "rye": {}, "oats": {},
	"egg": {}, "albumen": {},
	"peanut": {}, "peanuts": {},
	"tree nuts": {}, "almond": {}, "hazelnut": {}, "walnut": {}, "cashew": {},
	"pecan": {}, "pistachio": {}, "macadamia": {}, "brazil nut": {}, "pine nut": {},
	"sesame":  {},
	"mustard": {},
	"fish":    {},
	"shellfish": {}, "crustacean": {}, "shrimp": {}, "prawn": {}, "crab": {}, "lobster": {},
	"celery": {},
	"lupin":  {},
	"sulfite": {}, "sulphite": {}, "sulphites": {}, "sulfites": {},
}

// milkSynonyms fold into "milk" so dairy declared as lactose/butter/ghee
// still surfaces the parent allergen.
var milkSynonyms = []string{"lactose", "butter", "ghee"}

var (
	clausePattern     = regexp.MustCompile(`(?i)allerg(?:en|y)[^:]*:\s*([^.\n]+)`)
	tokenSplitPattern = regexp.MustCompile(`[,\s;/]+`)
)

// containsPatterns holds one "contains ... <term>(s)?" matcher per term,
// scoped to a single sentence (the [^.\n]* gap stops at periods/newlines).
var containsPatterns = buildContainsPatterns()

func buildContainsPatterns() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(vocabulary))
	for term := range vocabulary {
		m[term] = regexp.MustCompile(`\bcontains\b[^.\n]*\b` + regexp.QuoteMeta(term) + `s?\b`)
	}
	return m
}

// Detect returns the sorted, deduplicated allergens declared in text. Two
// passes are unioned: tokens of an explicit "allergen(s)/allergy ...:" clause
// tested against the vocabulary, and a per-term "contains ..." scan. Absence
// of both declaration forms yields no allergens even when allergen words
// appear in the ingredients list.
func Detect(text string) []string {
	if text == "" {
		return nil
	}
	low := strings.ToLower(text)
	found := make(map[string]struct{})

	if m := clausePattern.FindStringSubmatch(low); m != nil {
		for _, tok := range tokenSplitPattern.Split(m[1], -1) {
			tok = strings.TrimRight(strings.TrimSpace(tok), ".")
			if _, ok := vocabulary[tok]; ok {
				found[tok] = struct{}{}
			}
		}
	}

	for term, pattern := range containsPatterns {
		if pattern.MatchString(low) {
			found[term] = struct{}{}
		}
	}

	for _, syn := range milkSynonyms {
		if _, ok := found[syn]; ok {
			found["milk"] = struct{}{}
			break
		}
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for term := range found {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
