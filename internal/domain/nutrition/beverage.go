package nutrition

import "strings"

// beverageHints are substrings that mark a product name or category string
// as a drink.
var beverageHints = []string{
	"soft drink", "juice", "nectar", "soda", "cola", "tonic", "energy drink",
	"iced tea", "drink", "beverage", "water", "sparkling", "isotonic",
	"milk drink", "flavoured milk", "yogurt drink", "lassi", "buttermilk",
}

// nonBeverageLiquids are liquids sold by volume that are not drinks; they
// veto the volume-unit fallback below.
var nonBeverageLiquids = []string{"oil", "ghee", "sauce", "vinegar", "syrup", "dressing"}

// IsBeverage decides whether a product is a drink, which switches the sugar
// traffic-light thresholds and the scoring divisor. Decision order: a strong
// beverage keyword in name or categories wins; then a strong non-beverage
// liquid keyword vetoes; then a volume-unit quantity (ml/l) counts as a
// drink unless the name suggests a non-beverage liquid; otherwise solid.
func IsBeverage(name, categories, quantity string) bool {
	lowName := strings.ToLower(name)
	lowCats := strings.ReplaceAll(strings.ToLower(categories), ",", " ")

	for _, blob := range []string{lowName, lowCats} {
		if containsAny(blob, beverageHints) {
			return true
		}
		if containsAny(blob, nonBeverageLiquids) {
			return false
		}
	}

	lowQty := strings.ToLower(quantity)
	if strings.Contains(lowQty, "ml") || strings.Contains(lowQty, "l") {
		if !containsAny(lowName, nonBeverageLiquids) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
