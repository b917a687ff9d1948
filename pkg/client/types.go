package client

import (
	"github.com/turtacn/NutriLens/pkg/types/common"
)

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// Report is the analysis result returned by every endpoint.  The shape is
// identical whether the analysis came from a barcode lookup, a label photo
// or pasted text; fields a path cannot establish are zero values.
type Report struct {
	Barcode               string        `json:"barcode"`
	Name                  string        `json:"name"`
	Brand                 string        `json:"brand"`
	Image                 string        `json:"image"`
	Score                 int           `json:"score"`
	Grade                 common.Grade  `json:"grade"`
	IsBeverage            bool          `json:"is_beverage"`
	Traffic               TrafficLights `json:"traffic"`
	IngredientsText       string        `json:"ingredients_text"`
	StructuredIngredients []Ingredient  `json:"structured_ingredients"`
	Nutrition             Nutrition     `json:"nutrition"`
	Additives             []Additive    `json:"additives"`
	Allergens             []string      `json:"allergens"`
	Positives             []string      `json:"positives"`
	Negatives             []string      `json:"negatives"`
	Source                common.Source `json:"source"`
}

// TrafficLights buckets sugar, saturated fat and salt into low/medium/high.
type TrafficLights struct {
	Sugars common.TrafficLevel `json:"sugars"`
	SatFat common.TrafficLevel `json:"sat_fat"`
	Salt   common.TrafficLevel `json:"salt"`
}

// Ingredient is a single parsed ingredient list entry.  Percent is nil when
// the label does not state one.
type Ingredient struct {
	Name    string   `json:"name"`
	Percent *float64 `json:"percent"`
}

// Nutrition carries per-100g/ml nutrient values; nil means not declared.
type Nutrition struct {
	EnergyKJ  *float64 `json:"energy_kj"`
	SugarG    *float64 `json:"sugar_g"`
	SodiumMG  *float64 `json:"sodium_mg"`
	SatFatG   *float64 `json:"sat_fat_g"`
	TransFatG *float64 `json:"trans_fat_g"`
	FiberG    *float64 `json:"fiber_g"`
	ProteinG  *float64 `json:"protein_g"`
	FruitPct  *float64 `json:"fruit_pct"`
}

// Additive is a detected additive with its canonical code and risk tier.
type Additive struct {
	Code string           `json:"code"`
	Name string           `json:"name"`
	Risk common.RiskLevel `json:"risk"`
}

// PingResult is the connectivity check response.
type PingResult struct {
	App string `json:"app"`
	OK  bool   `json:"ok"`
}
