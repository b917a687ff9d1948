// Package additive recognizes E/INS additive codes in label text,
// canonicalizes them, and classifies each against a static risk catalog.
// The catalog and the numeric-body penalty sets are process-wide immutable
// tables; nothing in this package performs I/O.
package additive

import (
	"regexp"

	"github.com/turtacn/NutriLens/pkg/types/common"
)

// Info is one catalog entry: display name plus risk tier.
type Info struct {
	Name string
	Risk common.RiskLevel
}

// catalog maps canonical additive codes to their classification. E150D is
// dual-keyed because Indian labels print the INS spelling.
var catalog = map[string]Info{
	// Flavour enhancers
	"E621": {Name: "Monosodium glutamate (MSG)", Risk: common.RiskCaution},
	"E622": {Name: "Monopotassium glutamate", Risk: common.RiskCaution},
	"E623": {Name: "Calcium diglutamate", Risk: common.RiskCaution},
	"E624": {Name: "Monoammonium glutamate", Risk: common.RiskCaution},
	"E625": {Name: "Magnesium diglutamate", Risk: common.RiskCaution},
	"E627": {Name: "Disodium guanylate", Risk: common.RiskCaution},
	"E631": {Name: "Disodium inosinate", Risk: common.RiskCaution},

	// Colours
	"E110":    {Name: "Sunset Yellow FCF", Risk: common.RiskAvoid},
	"E102":    {Name: "Tartrazine", Risk: common.RiskAvoid},
	"E129":    {Name: "Allura Red AC", Risk: common.RiskAvoid},
	"E150D":   {Name: "Caramel colour IV (sulphite ammonia)", Risk: common.RiskModerate},
	"INS150D": {Name: "Caramel colour IV (sulphite ammonia)", Risk: common.RiskModerate},

	// Preservatives
	"E211": {Name: "Sodium benzoate", Risk: common.RiskModerate},
	"E202": {Name: "Potassium sorbate", Risk: common.RiskModerate},
	"E250": {Name: "Sodium nitrite", Risk: common.RiskAvoid},
	"E251": {Name: "Sodium nitrate", Risk: common.RiskAvoid},

	// Sweeteners
	"E950": {Name: "Acesulfame K", Risk: common.RiskModerate},
	"E951": {Name: "Aspartame", Risk: common.RiskAvoid},
	"E955": {Name: "Sucralose", Risk: common.RiskModerate},
	"E960": {Name: "Steviol glycosides", Risk: common.RiskGenerallySafe},

	// Low-concern processing aids
	"E296": {Name: "Malic acid", Risk: common.RiskGenerallySafe},
	"E330": {Name: "Citric acid", Risk: common.RiskGenerallySafe},
	"E331": {Name: "Sodium citrates", Risk: common.RiskGenerallySafe},
	"E327": {Name: "Calcium lactate", Risk: common.RiskGenerallySafe},
	"E170": {Name: "Calcium carbonate", Risk: common.RiskGenerallySafe},
	"E471": {Name: "Mono-/diglycerides of fatty acids", Risk: common.RiskModerate},
}

// Numeric-body sets drive the targeted scoring penalties. They deliberately
// reach beyond the catalog: a code in a set but absent from the catalog still
// triggers its penalty even though it classifies as unknown.
var (
	msgFamilyBodies = map[string]struct{}{
		"621": {}, "622": {}, "623": {}, "624": {}, "625": {}, "627": {}, "631": {},
	}
	syntheticColourBodies = map[string]struct{}{
		"102": {}, "104": {}, "110": {}, "122": {}, "124": {}, "129": {}, "133": {},
	}
	nitriteNitrateBodies = map[string]struct{}{
		"249": {}, "250": {}, "251": {}, "252": {},
	}
	phenolicAntioxidantBodies = map[string]struct{}{
		"319": {}, "320": {}, "321": {},
	}
)

var numericBodyPattern = regexp.MustCompile(`\d{3,4}`)

// NumericBody returns the digits of a canonical code ("INS150D" -> "150"),
// or "" when the code carries none.
func NumericBody(code string) string {
	return numericBodyPattern.FindString(code)
}

// IsMSGFamily reports whether the code is a glutamate-family flavour enhancer.
func IsMSGFamily(code string) bool {
	_, ok := msgFamilyBodies[NumericBody(code)]
	return ok
}

// IsSyntheticColour reports whether the code is an azo/synthetic colour.
func IsSyntheticColour(code string) bool {
	_, ok := syntheticColourBodies[NumericBody(code)]
	return ok
}

// IsNitriteOrNitrate reports whether the code is a curing nitrite/nitrate.
func IsNitriteOrNitrate(code string) bool {
	_, ok := nitriteNitrateBodies[NumericBody(code)]
	return ok
}

// IsPhenolicAntioxidant reports whether the code is TBHQ, BHA, or BHT.
func IsPhenolicAntioxidant(code string) bool {
	_, ok := phenolicAntioxidantBodies[NumericBody(code)]
	return ok
}
