package analysis

import (
	"github.com/turtacn/NutriLens/internal/domain/additive"
	"github.com/turtacn/NutriLens/internal/domain/label"
	"github.com/turtacn/NutriLens/internal/domain/nutrition"
	"github.com/turtacn/NutriLens/internal/domain/score"
	"github.com/turtacn/NutriLens/pkg/types/common"
)

// Report is the analysis response shared by every ingestion path.  The JSON
// shape is identical whether the analysis came from a barcode lookup, a label
// photo or pasted text; fields a path cannot establish are zero values, not
// omitted, so clients render one structure.
type Report struct {
	Barcode               string                  `json:"barcode"`
	Name                  string                  `json:"name"`
	Brand                 string                  `json:"brand"`
	Image                 string                  `json:"image"`
	Score                 int                     `json:"score"`
	Grade                 common.Grade            `json:"grade"`
	IsBeverage            bool                    `json:"is_beverage"`
	Traffic               score.Traffic           `json:"traffic"`
	IngredientsText       string                  `json:"ingredients_text"`
	StructuredIngredients []label.IngredientEntry `json:"structured_ingredients"`
	Nutrition             nutrition.Profile       `json:"nutrition"`
	Additives             []additive.Record       `json:"additives"`
	Allergens             []string                `json:"allergens"`
	Positives             []string                `json:"positives"`
	Negatives             []string                `json:"negatives"`
	Source                common.Source           `json:"source"`
}

// ensureLists keeps the list fields as empty arrays rather than null in
// JSON; the domain layer returns nil for "nothing found".
func (r *Report) ensureLists() {
	if r.StructuredIngredients == nil {
		r.StructuredIngredients = []label.IngredientEntry{}
	}
	if r.Additives == nil {
		r.Additives = []additive.Record{}
	}
	if r.Allergens == nil {
		r.Allergens = []string{}
	}
	if r.Positives == nil {
		r.Positives = []string{}
	}
	if r.Negatives == nil {
		r.Negatives = []string{}
	}
}
