package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NutriLens/pkg/types/common"
)

func TestNormalizeExtractionUnitConversion(t *testing.T) {
	p := NormalizeExtraction(Extraction{
		Basis:  common.BasisPer100G,
		Energy: &NutrientReading{Value: 100, Unit: "kcal"},
		Sugar:  &NutrientReading{Value: 500, Unit: "mg"},
		Sodium: &NutrientReading{Value: 1.2, Unit: "g"},
		SatFat: &NutrientReading{Value: 3, Unit: "G"},
		Fiber:  &NutrientReading{Value: 2.5, Unit: ""},
	})

	require.NotNil(t, p.EnergyKJ)
	assert.InDelta(t, 418.4, *p.EnergyKJ, 0.001)
	require.NotNil(t, p.SugarG)
	assert.InDelta(t, 0.5, *p.SugarG, 0.001)
	require.NotNil(t, p.SodiumMG)
	assert.InDelta(t, 1200, *p.SodiumMG, 0.001)
	require.NotNil(t, p.SatFatG)
	assert.InDelta(t, 3, *p.SatFatG, 0.001)
	require.NotNil(t, p.FiberG)
	assert.InDelta(t, 2.5, *p.FiberG, 0.001)
	assert.Nil(t, p.TransFatG)
	assert.Nil(t, p.ProteinG)
}

func TestNormalizeExtractionDropsMalformedReadings(t *testing.T) {
	p := NormalizeExtraction(Extraction{
		Basis:   common.BasisPer100G,
		Energy:  &NutrientReading{Value: 200, Unit: "watts"},
		Sugar:   &NutrientReading{Value: -4, Unit: "g"},
		Sodium:  &NutrientReading{Value: 100, Unit: "mmol"},
		Protein: &NutrientReading{Value: 8, Unit: "g"},
	})

	assert.Nil(t, p.EnergyKJ)
	assert.Nil(t, p.SugarG)
	assert.Nil(t, p.SodiumMG)
	require.NotNil(t, p.ProteinG)
	assert.InDelta(t, 8, *p.ProteinG, 0.001)
}

func TestNormalizeExtractionPerServingRescales(t *testing.T) {
	fruit := 45.0
	p := NormalizeExtraction(Extraction{
		Basis:       common.BasisPerServing,
		ServingSize: 30,
		ServingUnit: "g",
		Energy:      &NutrientReading{Value: 120, Unit: "kcal"},
		Sugar:       &NutrientReading{Value: 9, Unit: "g"},
		Sodium:      &NutrientReading{Value: 60, Unit: "mg"},
		FruitPct:    &fruit,
	})

	require.NotNil(t, p.SugarG)
	assert.InDelta(t, 30, *p.SugarG, 0.001)
	require.NotNil(t, p.SodiumMG)
	assert.InDelta(t, 200, *p.SodiumMG, 0.001)
	require.NotNil(t, p.EnergyKJ)
	assert.InDelta(t, 120*4.184*100/30, *p.EnergyKJ, 0.001)

	// A fruit percentage is already a proportion of the product.
	require.NotNil(t, p.FruitPct)
	assert.InDelta(t, 45, *p.FruitPct, 0.001)
}

func TestNormalizeExtractionPerServingNeedsScalableServing(t *testing.T) {
	tests := []struct {
		name string
		size float64
		unit string
	}{
		{"zero serving size", 0, "g"},
		{"negative serving size", -10, "g"},
		{"count based serving", 2, "pieces"},
		{"missing unit", 30, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizeExtraction(Extraction{
				Basis:       common.BasisPerServing,
				ServingSize: tt.size,
				ServingUnit: tt.unit,
				Sugar:       &NutrientReading{Value: 9, Unit: "g"},
			})
			require.NotNil(t, p.SugarG)
			assert.InDelta(t, 9, *p.SugarG, 0.001, "unscalable servings pass values through")
		})
	}
}

func TestNormalizeExtractionUnknownBasisPassthrough(t *testing.T) {
	p := NormalizeExtraction(Extraction{
		Basis: common.BasisUnknown,
		Sugar: &NutrientReading{Value: 12, Unit: "g"},
	})
	require.NotNil(t, p.SugarG)
	assert.InDelta(t, 12, *p.SugarG, 0.001)
}

func TestNormalizeExtractionFruitPctBounds(t *testing.T) {
	inRange := 80.0
	tooHigh := 130.0
	negative := -5.0

	p := NormalizeExtraction(Extraction{Basis: common.BasisPer100G, FruitPct: &inRange})
	require.NotNil(t, p.FruitPct)
	assert.InDelta(t, 80, *p.FruitPct, 0.001)

	assert.Nil(t, NormalizeExtraction(Extraction{Basis: common.BasisPer100G, FruitPct: &tooHigh}).FruitPct)
	assert.Nil(t, NormalizeExtraction(Extraction{Basis: common.BasisPer100G, FruitPct: &negative}).FruitPct)
}

func TestNormalizeExtractionEmpty(t *testing.T) {
	p := NormalizeExtraction(Extraction{})
	assert.Nil(t, p.EnergyKJ)
	assert.Nil(t, p.SugarG)
	assert.Nil(t, p.SodiumMG)
	assert.Nil(t, p.SatFatG)
	assert.Nil(t, p.TransFatG)
	assert.Nil(t, p.FiberG)
	assert.Nil(t, p.ProteinG)
	assert.Nil(t, p.FruitPct)
}
