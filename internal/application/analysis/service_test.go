package analysis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NutriLens/internal/domain/nutrition"
	"github.com/turtacn/NutriLens/internal/infrastructure/ocr"
	"github.com/turtacn/NutriLens/internal/infrastructure/openfoodfacts"
	"github.com/turtacn/NutriLens/internal/testutil"
	"github.com/turtacn/NutriLens/pkg/errors"
	"github.com/turtacn/NutriLens/pkg/types/common"
)

func newTestService() (Service, *testutil.MockLogger) {
	log := testutil.NewMockLogger()
	return NewService(log, nil), log
}

func TestAnalyzeTextEndToEnd(t *testing.T) {
	svc, log := newTestService()

	report, err := svc.AnalyzeText(context.Background(),
		AnalyzeTextRequest{IngredientsText: "Ingredients: Water, Sugar, Citric Acid (E330), Salt, Allergens: Milk"})
	require.NoError(t, err)

	assert.Equal(t, common.SourceOCRText, report.Source)
	assert.Equal(t, "Ingredients scan", report.Name)
	assert.Empty(t, report.Barcode)
	assert.False(t, report.IsBeverage)

	require.Len(t, report.StructuredIngredients, 4)
	assert.Equal(t, "Water", report.StructuredIngredients[0].Name)
	assert.Equal(t, "Sugar", report.StructuredIngredients[1].Name)
	for _, e := range report.StructuredIngredients {
		assert.Nil(t, e.Percent)
	}

	assert.Equal(t, []string{"milk"}, report.Allergens)

	require.Len(t, report.Additives, 1)
	assert.Equal(t, "E330", report.Additives[0].Code)
	assert.Equal(t, common.RiskGenerallySafe, report.Additives[0].Risk)

	// Base 78, sugar keyword -8, salt keyword -4, then the sparse-data
	// guardrail pulls 66 down to 65.
	assert.Equal(t, 65, report.Score)
	assert.Equal(t, common.GradeB, report.Grade)
	assert.Equal(t, []string{"Added sugars/syrups", "Added salt"}, report.Negatives)
	assert.Empty(t, report.Positives)

	assert.Equal(t, common.TrafficUnknown, report.Traffic.Sugars)
	assert.Equal(t, common.TrafficUnknown, report.Traffic.SatFat)
	assert.Equal(t, common.TrafficUnknown, report.Traffic.Salt)

	assert.True(t, log.HasMessage("info", "analysis completed"))
}

func TestAnalyzeTextRequiresText(t *testing.T) {
	svc, log := newTestService()

	for _, text := range []string{"", "   ", "\n\t"} {
		report, err := svc.AnalyzeText(context.Background(), AnalyzeTextRequest{IngredientsText: text})
		require.Error(t, err)
		assert.Nil(t, report)
		assert.True(t, errors.IsCode(err, errors.ErrCodeEmptyIngredientsText))
	}
	assert.True(t, log.HasMessage("warn", "analysis rejected"))
}

func TestAnalyzeTextIdentityFields(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.AnalyzeText(context.Background(), AnalyzeTextRequest{
		IngredientsText: "Water.",
		Name:            "  Cereal Bar  ",
		Brand:           " Acme ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cereal Bar", report.Name)
	assert.Equal(t, "Acme", report.Brand)

	// No nutrition facts at all: base 78 clamps to the guardrail ceiling.
	assert.Equal(t, 65, report.Score)
	assert.Equal(t, common.GradeB, report.Grade)
}

func TestAnalyzeExtraction(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.AnalyzeExtraction(context.Background(), ocr.ExtractedLabel{
		Beverage:        true,
		IngredientsText: "water, sugar",
		Profile:         nutrition.Profile{SugarG: nutrition.Float(12)},
	})
	require.NoError(t, err)

	assert.Equal(t, common.SourceOCR, report.Source)
	assert.Equal(t, "Ingredients scan", report.Name)
	assert.True(t, report.IsBeverage)
	assert.Equal(t, common.TrafficHigh, report.Traffic.Sugars, "beverage threshold applies")
	assert.Contains(t, report.Negatives, "High in total sugars")
	assert.Contains(t, report.Negatives, "Added sugars/syrups")

	// Only one core nutrient known, so the guardrail bounds the score.
	assert.GreaterOrEqual(t, report.Score, 35)
	assert.LessOrEqual(t, report.Score, 65)
}

func TestAnalyzeExtractionAcceptsEmptyText(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.AnalyzeExtraction(context.Background(), ocr.ExtractedLabel{
		Profile: nutrition.Profile{
			SugarG:   nutrition.Float(2),
			SatFatG:  nutrition.Float(0.5),
			SodiumMG: nutrition.Float(100),
			FiberG:   nutrition.Float(6),
			ProteinG: nutrition.Float(8),
		},
	})
	require.NoError(t, err)
	assert.Empty(t, report.IngredientsText)
	assert.Empty(t, report.StructuredIngredients)
	assert.Contains(t, report.Positives, "High in fiber (≥3g/100g)")
	assert.Contains(t, report.Positives, "Good source of protein (≥5g/100g)")
	assert.Empty(t, report.Negatives)
	assert.Equal(t, 90, report.Score, "clean profile scores high without any text")
	assert.Equal(t, common.GradeAPlus, report.Grade)
}

func TestAnalyzeProduct(t *testing.T) {
	svc, _ := newTestService()

	product := openfoodfacts.Product{
		ProductName:     "Choco Spread",
		Brands:          "Acme, Acme Intl",
		Categories:      "Spreads, Sweet spreads",
		Quantity:        "400 g",
		IngredientsText: "Sugar, palm oil, hazelnuts (13%), cocoa",
		ImageFrontURL:   "https://img.example/front.jpg",
		ImageURL:        "https://img.example/any.jpg",
		Nutriments: map[string]interface{}{
			"sugars_100g":        56.3,
			"saturated_fat_100g": 10.6,
			"sodium_100g":        0.041,
			"proteins_100g":      6.3,
			"fiber_100g":         "3.4",
		},
	}

	report, err := svc.AnalyzeProduct(context.Background(), "3017620422003", product)
	require.NoError(t, err)

	assert.Equal(t, "3017620422003", report.Barcode)
	assert.Equal(t, "Choco Spread", report.Name)
	assert.Equal(t, "Acme", report.Brand)
	assert.Equal(t, "https://img.example/front.jpg", report.Image)
	assert.Equal(t, common.SourceOpenFoodFacts, report.Source)
	assert.False(t, report.IsBeverage)

	require.NotNil(t, report.Nutrition.SugarG)
	assert.InDelta(t, 56.3, *report.Nutrition.SugarG, 0.001)
	require.NotNil(t, report.Nutrition.SodiumMG)
	assert.InDelta(t, 41, *report.Nutrition.SodiumMG, 0.001)
	require.NotNil(t, report.Nutrition.FiberG)
	assert.InDelta(t, 3.4, *report.Nutrition.FiberG, 0.001)

	assert.Equal(t, common.TrafficHigh, report.Traffic.Sugars)
	assert.Equal(t, common.TrafficHigh, report.Traffic.SatFat)

	// Upstream ingredient text has no "Ingredients:" marker, so the
	// structured list stays empty while keyword scans still fire.
	assert.Empty(t, report.StructuredIngredients)
	assert.Contains(t, report.Negatives, "Palm oil")
	assert.LessOrEqual(t, report.Score, 62, "palm oil mention caps the score")
}

func TestAnalyzeProductFallbacks(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.AnalyzeProduct(context.Background(), "5449000000996", openfoodfacts.Product{
		Categories: "Beverages, Sodas",
		Quantity:   "330 ml",
		ImageURL:   "https://img.example/any.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "Unknown", report.Name)
	assert.Empty(t, report.Brand)
	assert.Equal(t, "https://img.example/any.jpg", report.Image)
	assert.True(t, report.IsBeverage)

	// Nil nutriments coerce to an all-unknown profile, not zeros.
	assert.Nil(t, report.Nutrition.SugarG)
	assert.GreaterOrEqual(t, report.Score, 35)
	assert.LessOrEqual(t, report.Score, 65)
}

func TestReportListsSerializeAsArrays(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.AnalyzeText(context.Background(), AnalyzeTextRequest{IngredientsText: "Water."})
	require.NoError(t, err)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `"structured_ingredients":[]`)
	assert.Contains(t, body, `"additives":[]`)
	assert.Contains(t, body, `"allergens":[]`)
	assert.Contains(t, body, `"positives":[]`)
	assert.Contains(t, body, `"negatives":[]`)
	assert.Contains(t, body, `"source":"ocr-text"`)
}
