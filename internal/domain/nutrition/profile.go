// Package nutrition holds the canonical nutrient profile plus the pure logic
// that derives it and judges it: coercion of loosely-typed upstream records,
// the beverage heuristic, and regulatory-style traffic-light banding. All
// values are per-100g/ml; a nil pointer means unknown, which downstream
// scoring treats differently from zero.
package nutrition

// Profile is the normalized nutrient snapshot of a product. Fields are nil
// when the source did not state (or failed to parse) the value; present
// values are non-negative.
type Profile struct {
	EnergyKJ  *float64 `json:"energy_kj"`
	SugarG    *float64 `json:"sugar_g"`
	SodiumMG  *float64 `json:"sodium_mg"`
	SatFatG   *float64 `json:"sat_fat_g"`
	TransFatG *float64 `json:"trans_fat_g"`
	FiberG    *float64 `json:"fiber_g"`
	ProteinG  *float64 `json:"protein_g"`
	FruitPct  *float64 `json:"fruit_pct"`
}

// KnownCoreCount reports how many of the six core nutrients (energy, sugar,
// sat fat, sodium, fiber, protein) are present. The score engine's
// sparse-data guardrail keys off this count; fruit percentage and trans fat
// do not qualify a profile as "known".
func (p Profile) KnownCoreCount() int {
	n := 0
	for _, v := range []*float64{p.EnergyKJ, p.SugarG, p.SatFatG, p.SodiumMG, p.FiberG, p.ProteinG} {
		if v != nil {
			n++
		}
	}
	return n
}

// Float is a pointer-literal helper for building profiles in tests and
// adapters.
func Float(v float64) *float64 { return &v }
