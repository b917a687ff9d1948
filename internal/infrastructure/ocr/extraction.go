package ocr

import (
	"strings"

	"github.com/turtacn/NutriLens/internal/domain/nutrition"
	"github.com/turtacn/NutriLens/pkg/types/common"
)

// NutrientReading is one value+unit pair read off a nutrition table, before
// unit normalization.
type NutrientReading struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Extraction is the structured result of reading a nutrition panel: raw
// readings in whatever units the label printed, the basis they are stated on,
// and the serving size when the basis is per-serving.
type Extraction struct {
	Name            string       `json:"name,omitempty"`
	Brand           string       `json:"brand,omitempty"`
	Beverage        bool         `json:"beverage"`
	IngredientsText string       `json:"ingredients_text"`
	Basis           common.Basis `json:"basis"`
	ServingSize     float64      `json:"serving_size,omitempty"`
	ServingUnit     string       `json:"serving_unit,omitempty"`

	Energy   *NutrientReading `json:"energy,omitempty"`
	Sugar    *NutrientReading `json:"sugar,omitempty"`
	Sodium   *NutrientReading `json:"sodium,omitempty"`
	SatFat   *NutrientReading `json:"sat_fat,omitempty"`
	TransFat *NutrientReading `json:"trans_fat,omitempty"`
	Fiber    *NutrientReading `json:"fiber,omitempty"`
	Protein  *NutrientReading `json:"protein,omitempty"`
	FruitPct *float64         `json:"fruit_pct,omitempty"`
}

// ExtractedLabel is the fully normalized label handed to the analysis
// pipeline: identity fields plus a per-100 nutrient profile.
type ExtractedLabel struct {
	Name            string
	Brand           string
	Beverage        bool
	IngredientsText string
	Profile         nutrition.Profile
}

// massToGrams converts a reading to grams.  Readings in unknown units or
// with negative values are dropped.
func massToGrams(r *NutrientReading) *float64 {
	if r == nil || r.Value < 0 {
		return nil
	}
	switch normalizeUnit(r.Unit) {
	case "g", "":
		return nutrition.Float(r.Value)
	case "mg":
		return nutrition.Float(r.Value / 1000)
	}
	return nil
}

// massToMilligrams converts a reading in the given unit to milligrams.
func massToMilligrams(r *NutrientReading) *float64 {
	if r == nil || r.Value < 0 {
		return nil
	}
	switch normalizeUnit(r.Unit) {
	case "mg", "":
		return nutrition.Float(r.Value)
	case "g":
		return nutrition.Float(r.Value * 1000)
	}
	return nil
}

// energyToKJ converts an energy reading to kilojoules.
func energyToKJ(r *NutrientReading) *float64 {
	if r == nil || r.Value < 0 {
		return nil
	}
	switch normalizeUnit(r.Unit) {
	case "kj", "":
		return nutrition.Float(r.Value)
	case "kcal", "cal":
		return nutrition.Float(r.Value * 4.184)
	}
	return nil
}

func normalizeUnit(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// NormalizeExtraction converts raw panel readings into a per-100 Profile:
// units are normalized first, then per-serving values are rescaled by
// 100/serving when the basis is per-serving with a positive g/ml serving
// size.  An unknown basis passes values through unscaled; malformed readings
// become unknown fields, never zeros.  Pure, never fails.
func NormalizeExtraction(ex Extraction) nutrition.Profile {
	p := nutrition.Profile{
		EnergyKJ:  energyToKJ(ex.Energy),
		SugarG:    massToGrams(ex.Sugar),
		SodiumMG:  massToMilligrams(ex.Sodium),
		SatFatG:   massToGrams(ex.SatFat),
		TransFatG: massToGrams(ex.TransFat),
		FiberG:    massToGrams(ex.Fiber),
		ProteinG:  massToGrams(ex.Protein),
	}
	if ex.FruitPct != nil && *ex.FruitPct >= 0 && *ex.FruitPct <= 100 {
		p.FruitPct = nutrition.Float(*ex.FruitPct)
	}

	if ex.Basis == common.BasisPerServing && servingScalable(ex) {
		factor := 100 / ex.ServingSize
		for _, v := range []**float64{&p.EnergyKJ, &p.SugarG, &p.SodiumMG, &p.SatFatG, &p.TransFatG, &p.FiberG, &p.ProteinG} {
			if *v != nil {
				scaled := **v * factor
				*v = &scaled
			}
		}
		// FruitPct is already a proportion; serving scaling does not apply.
	}
	return p
}

func servingScalable(ex Extraction) bool {
	if ex.ServingSize <= 0 {
		return false
	}
	switch normalizeUnit(ex.ServingUnit) {
	case "g", "ml":
		return true
	}
	return false
}
