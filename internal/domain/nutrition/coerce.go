package nutrition

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// saltToSodiumMG converts grams of salt to milligrams of sodium
// (1 g salt ≈ 393 mg sodium).
const saltToSodiumMG = 393.0

// kcalToKJ converts kilocalories to kilojoules.
const kcalToKJ = 4.184

// fieldStep is one entry of a coercion chain: a record key plus the factor
// that brings its value onto the canonical unit.
type fieldStep struct {
	key    string
	factor float64
}

// Coercion chains, tried in order until one yields a parseable number. The
// upstream record format is inconsistent about both naming and units, so
// each nutrient lists every known spelling with its unit conversion.
var (
	sodiumChain = []fieldStep{
		{"sodium_mg", 1},
		{"sodium_100g", 1000},
		{"salt_100g", saltToSodiumMG},
	}
	energyChain = []fieldStep{
		{"energy-kj_100g", 1},
		{"energy_100g", 1}, // bare "energy" is assumed to be kJ
		{"energy-kcal_100g", kcalToKJ},
	}
	sugarChain    = []fieldStep{{"sugars_100g", 1}, {"sugar_100g", 1}}
	satFatChain   = []fieldStep{{"saturated_fat_100g", 1}, {"saturated-fat_100g", 1}}
	transFatChain = []fieldStep{{"trans_fat_100g", 1}, {"trans-fat_100g", 1}}
	fiberChain    = []fieldStep{{"fiber_100g", 1}, {"fibre_100g", 1}}
	proteinChain  = []fieldStep{{"proteins_100g", 1}, {"protein_100g", 1}}
	fruitChain    = []fieldStep{
		{"fruits-vegetables-nuts-estimate-from-ingredients_100g", 1},
		{"fruits-vegetables-nuts_100g", 1},
	}
)

// Coerce normalizes a loosely-typed nutriments record into a Profile. Every
// nutrient walks its chain; absent, unparseable or negative values yield nil,
// never zero. Coerce itself never fails.
func Coerce(record map[string]any) Profile {
	return Profile{
		EnergyKJ:  resolve(record, energyChain),
		SugarG:    resolve(record, sugarChain),
		SodiumMG:  resolve(record, sodiumChain),
		SatFatG:   resolve(record, satFatChain),
		TransFatG: resolve(record, transFatChain),
		FiberG:    resolve(record, fiberChain),
		ProteinG:  resolve(record, proteinChain),
		FruitPct:  resolve(record, fruitChain),
	}
}

func resolve(record map[string]any, chain []fieldStep) *float64 {
	for _, step := range chain {
		raw, ok := record[step.key]
		if !ok || raw == nil {
			continue
		}
		v, ok := ParseNumber(raw)
		if !ok {
			continue
		}
		// A negative nutrient amount is upstream garbage; treat it like an
		// unparseable entry so the Profile non-negativity invariant holds.
		if v < 0 {
			continue
		}
		scaled := v * step.factor
		return &scaled
	}
	return nil
}

// ParseNumber extracts a float from the value shapes upstream JSON decoding
// produces: float64, json.Number, or a numeric string. NaN and infinities
// are rejected so they cannot poison the score arithmetic.
func ParseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
