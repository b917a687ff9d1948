package score

import (
	"regexp"
	"strings"
)

// keywordPenalty is one matched ingredient-text family: the finding label
// plus its score delta (always negative).
type keywordPenalty struct {
	Label string
	Delta float64
}

var (
	palmPattern  = regexp.MustCompile(`\bpalm(olein| oil)?\b`)
	friedPattern = regexp.MustCompile(`\bfried\b`)
	msgPattern   = regexp.MustCompile(`\bmsg\b`)
)

// keywordFamily pairs a penalty with its text matcher. Families match at
// most once each regardless of how many member phrases occur.
type keywordFamily struct {
	label   string
	delta   float64
	matches func(low string) bool
}

var keywordFamilies = []keywordFamily{
	{"Palm oil", -6, palmPattern.MatchString},
	{"Hydrogenated/partially hydrogenated oils", -20, containsAny("hydrogenated")},
	{"Added sugars/syrups", -8, containsAny(
		"sugar", "glucose", "fructose", "hfcs", "corn syrup", "invert syrup",
		"malt syrup", "dextrose")},
	{"Added salt", -4, containsAny("salt", "sodium chloride")},
	{"Artificial sweeteners", -5, containsAny("acesulfame", "sucralose", "aspartame")},
	{"Artificial flavour", -5, containsAny("artificial flavour", "artificial flavor")},
	{"Added colours", -5, containsAny("colour", "color")},
	{"Fried or extruded", -6, func(low string) bool {
		return friedPattern.MatchString(low) || strings.Contains(low, "extruded")
	}},
	{"MSG/glutamate enhancers", -6, mentionsMSG},
}

func containsAny(subs ...string) func(string) bool {
	return func(low string) bool {
		for _, sub := range subs {
			if strings.Contains(low, sub) {
				return true
			}
		}
		return false
	}
}

func mentionsMSG(low string) bool {
	return msgPattern.MatchString(low) || strings.Contains(low, "monosodium glutamate")
}

// matchKeywordFamilies scans lowercased ingredients text and returns the
// penalties of every matching family, in table order.
func matchKeywordFamilies(low string) []keywordPenalty {
	if low == "" {
		return nil
	}
	var out []keywordPenalty
	for _, f := range keywordFamilies {
		if f.matches(low) {
			out = append(out, keywordPenalty{Label: f.label, Delta: f.delta})
		}
	}
	return out
}

// processingPenalty charges for processing markers in the ingredients text:
// +5 fried, +4 extruded/puffed, +4 palm oil, +2 flavour-enhancer mention,
// capped at 10.
func processingPenalty(low string) float64 {
	if low == "" {
		return 0
	}
	var p float64
	if friedPattern.MatchString(low) {
		p += 5
	}
	if strings.Contains(low, "extruded") || strings.Contains(low, "puffed") {
		p += 4
	}
	if palmPattern.MatchString(low) {
		p += 4
	}
	if strings.Contains(low, "flavour enhancer") || strings.Contains(low, "flavor enhancer") {
		p += 2
	}
	if p > 10 {
		p = 10
	}
	return p
}
