// Package score computes the 0-100 health score, letter grade, traffic
// lights and plain-language findings for an analyzed product. Scoring is
// deterministic: the same profile, additive list and ingredients text
// always produce the same result.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/turtacn/NutriLens/internal/domain/additive"
	"github.com/turtacn/NutriLens/internal/domain/nutrition"
	"github.com/turtacn/NutriLens/pkg/types/common"
)

// Traffic holds the per-nutrient traffic-light ratings.
type Traffic struct {
	Sugars common.TrafficLevel `json:"sugars"`
	SatFat common.TrafficLevel `json:"sat_fat"`
	Salt   common.TrafficLevel `json:"salt"`
}

// Result is the full scoring outcome for one product.
type Result struct {
	Score     int          `json:"score"`
	Grade     common.Grade `json:"grade"`
	Traffic   Traffic      `json:"traffic"`
	Positives []string     `json:"positives"`
	Negatives []string     `json:"negatives"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Scoring
// ─────────────────────────────────────────────────────────────────────────────

// Compute scores a product from its per-100g/ml nutrition profile, its
// classified additives, its normalized ingredients text and the beverage
// flag. Missing nutrients contribute nothing to either side of the score.
// The final score rounds half away from zero and clamps to [0,100].
func Compute(profile nutrition.Profile, additives []additive.Record, ingredientsText string, beverage bool) Result {
	low := strings.ToLower(ingredientsText)

	neg := negativePoints(profile, beverage)
	pos := positivePoints(profile)
	score := 78.0 - neg*2.0 + pos*1.8

	score -= additivePenalty(additives)
	score -= processingPenalty(low)

	matched := matchKeywordFamilies(low)
	for _, k := range matched {
		score += k.Delta
	}

	highTransFat := profile.TransFatG != nil && *profile.TransFatG > 0.1
	if highTransFat {
		score -= 18
	}

	var hasAvoid, hasNitrite, hasColour, hasMSGCode bool
	for _, a := range additives {
		if a.Risk == common.RiskAvoid {
			hasAvoid = true
		}
		if additive.IsNitriteOrNitrate(a.Code) {
			hasNitrite = true
		}
		if additive.IsSyntheticColour(a.Code) {
			hasColour = true
		}
		if additive.IsMSGFamily(a.Code) {
			hasMSGCode = true
		}
	}

	// Hard caps only ever lower the running score.
	if hasAvoid && score > 50 {
		score = 50
	}
	if hasNitrite && score > 40 {
		score = 40
	}
	if hasColour && score > 58 {
		score = 58
	}
	palmMention := palmPattern.MatchString(low)
	if palmMention && score > 62 {
		score = 62
	}
	// Flat deduction, not a cap, so it lands even when a cap already bound.
	if mentionsMSG(low) || hasMSGCode {
		score -= 5
	}

	// With almost no nutrition data the formula mostly reflects its own
	// constants, so keep such scores away from both extremes.
	if profile.KnownCoreCount() <= 1 {
		if score < 35 {
			score = 35
		}
		if score > 65 {
			score = 65
		}
	}

	final := int(math.Round(score))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	traffic := Traffic{
		Sugars: nutrition.SugarLevel(profile.SugarG, beverage),
		SatFat: nutrition.SatFatLevel(profile.SatFatG),
		Salt:   nutrition.SaltLevel(profile.SodiumMG, beverage),
	}

	positives, negatives := findings(profile, additives, matched, traffic, highTransFat)

	return Result{
		Score:     final,
		Grade:     GradeFor(final),
		Traffic:   traffic,
		Positives: positives,
		Negatives: negatives,
	}
}

// GradeFor maps a final score to its letter grade.
func GradeFor(score int) common.Grade {
	switch {
	case score >= 85:
		return common.GradeAPlus
	case score >= 75:
		return common.GradeA
	case score >= 65:
		return common.GradeB
	case score >= 50:
		return common.GradeC
	case score >= 35:
		return common.GradeD
	}
	return common.GradeE
}

// negativePoints accumulates energy, sugar, saturated-fat and sodium
// points, each component capped at 10 and the sum capped at 30. Beverages
// use the stricter sugar divisor.
func negativePoints(p nutrition.Profile, beverage bool) float64 {
	var pts float64
	if p.EnergyKJ != nil {
		pts += math.Min(10, math.Max(0, *p.EnergyKJ/188.0))
	}
	if p.SugarG != nil {
		div := 2.8
		if beverage {
			div = 1.8
		}
		pts += math.Min(10, math.Max(0, *p.SugarG/div))
	}
	if p.SatFatG != nil {
		pts += math.Min(10, math.Max(0, *p.SatFatG/1.3))
	}
	if p.SodiumMG != nil {
		pts += math.Min(10, math.Max(0, *p.SodiumMG/230.0))
	}
	return math.Min(30, pts)
}

// positivePoints accumulates fiber, protein and fruit/veg/nut points,
// capped at 16 overall.
func positivePoints(p nutrition.Profile) float64 {
	var pts float64
	if p.FiberG != nil {
		pts += math.Min(6, math.Max(0, *p.FiberG/1.2))
	}
	if p.ProteinG != nil {
		pts += math.Min(5, math.Max(0, *p.ProteinG/2.2))
	}
	if p.FruitPct != nil {
		pts += fruitPoints(*p.FruitPct)
	}
	return math.Min(16, pts)
}

func fruitPoints(pct float64) float64 {
	switch {
	case pct >= 80:
		return 5
	case pct >= 60:
		return 4
	case pct >= 40:
		return 3
	case pct >= 20:
		return 2
	case pct >= 5:
		return 1
	}
	return 0
}

// additivePenalty charges each classified additive by risk tier, with
// extra weight for the named code sets. The raw total caps at 36 and the
// deduction taken from the score caps at 28.
func additivePenalty(records []additive.Record) float64 {
	var raw float64
	for _, a := range records {
		switch a.Risk {
		case common.RiskAvoid:
			raw += 10
		case common.RiskModerate:
			raw += 5
		case common.RiskCaution:
			raw += 4
		case common.RiskGenerallySafe:
			// free
		default:
			raw += 1
		}
		if additive.IsMSGFamily(a.Code) {
			raw += 2
		}
		if additive.IsSyntheticColour(a.Code) {
			raw += 5
		}
		if additive.IsNitriteOrNitrate(a.Code) {
			raw += 10
		}
		if additive.IsPhenolicAntioxidant(a.Code) {
			raw += 8
		}
	}
	if raw > 36 {
		raw = 36
	}
	return math.Min(28, raw)
}

// ─────────────────────────────────────────────────────────────────────────────
// Findings
// ─────────────────────────────────────────────────────────────────────────────

// findings builds the deduplicated positive and negative finding lists in
// presentation order: nutrient findings first, then avoid-tier additives,
// then matched ingredient keywords.
func findings(p nutrition.Profile, additives []additive.Record, matched []keywordPenalty, traffic Traffic, highTransFat bool) ([]string, []string) {
	var pros, cons []string

	if p.FiberG != nil && *p.FiberG >= 3 {
		pros = append(pros, "High in fiber (≥3g/100g)")
	}
	if p.ProteinG != nil && *p.ProteinG >= 5 {
		pros = append(pros, "Good source of protein (≥5g/100g)")
	}

	if traffic.Sugars == common.TrafficHigh {
		cons = append(cons, "High in total sugars")
	}
	if traffic.Salt == common.TrafficHigh {
		cons = append(cons, "High in salt (from sodium)")
	}
	if traffic.SatFat == common.TrafficHigh {
		cons = append(cons, "High in saturated fat")
	}
	if highTransFat {
		cons = append(cons, "Contains trans fats")
	}
	for _, a := range additives {
		if a.Risk == common.RiskAvoid {
			cons = append(cons, fmt.Sprintf("Contains %s (%s)", a.Name, a.Code))
		}
	}
	for _, k := range matched {
		cons = append(cons, k.Label)
	}

	return dedupe(pros), dedupe(cons)
}

// dedupe drops repeated findings, keeping first occurrences in order.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
