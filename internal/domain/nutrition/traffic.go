package nutrition

import "github.com/turtacn/NutriLens/pkg/types/common"

// Traffic-light banding per 100g/ml, modeled on UK FSA front-of-pack
// thresholds. Each function returns TrafficUnknown when the input is absent.

// SugarLevel bands total sugars. Beverages use stricter thresholds.
func SugarLevel(sugarG *float64, beverage bool) common.TrafficLevel {
	if sugarG == nil {
		return common.TrafficUnknown
	}
	v := *sugarG
	if beverage {
		switch {
		case v <= 2.5:
			return common.TrafficLow
		case v <= 11.25:
			return common.TrafficMedium
		}
		return common.TrafficHigh
	}
	switch {
	case v <= 5:
		return common.TrafficLow
	case v <= 22.5:
		return common.TrafficMedium
	}
	return common.TrafficHigh
}

// SatFatLevel bands saturated fat; beverages and solids share thresholds.
func SatFatLevel(satFatG *float64) common.TrafficLevel {
	if satFatG == nil {
		return common.TrafficUnknown
	}
	switch {
	case *satFatG <= 1.5:
		return common.TrafficLow
	case *satFatG <= 5:
		return common.TrafficMedium
	}
	return common.TrafficHigh
}

// SaltLevel bands salt derived from sodium (salt_g = sodium_mg/1000 * 2.5).
// The beverage parameter is part of the stable signature shared by the three
// banding functions but the salt thresholds are identical for drinks and
// solids, so it has no effect.
func SaltLevel(sodiumMG *float64, beverage bool) common.TrafficLevel {
	_ = beverage
	if sodiumMG == nil {
		return common.TrafficUnknown
	}
	saltG := *sodiumMG / 1000.0 * 2.5
	switch {
	case saltG <= 0.3:
		return common.TrafficLow
	case saltG <= 1.5:
		return common.TrafficMedium
	}
	return common.TrafficHigh
}
