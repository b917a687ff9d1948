package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/turtacn/NutriLens/pkg/client"
	"github.com/turtacn/NutriLens/pkg/types/common"
)

// reportView decorates a client.Report with the renderings used by the text
// and table output formats. JSON output marshals the embedded report as-is,
// so `-o json` stays byte-compatible with the server response.
type reportView struct {
	*client.Report
}

func newReportView(r *client.Report) reportView {
	return reportView{Report: r}
}

// String renders the report as a terminal summary.
func (v reportView) String() string {
	var sb strings.Builder

	title := v.Name
	if title == "" {
		title = "Unnamed product"
	}
	if v.Brand != "" {
		title = fmt.Sprintf("%s (%s)", title, v.Brand)
	}
	sb.WriteString(title + "\n")

	if v.Barcode != "" {
		fmt.Fprintf(&sb, "Barcode: %s\n", v.Barcode)
	}
	fmt.Fprintf(&sb, "Source: %s\n", v.Source)

	fmt.Fprintf(&sb, "\nScore: %d/100  Grade: %s\n", v.Score, colorGrade(v.Grade))
	if v.IsBeverage {
		sb.WriteString("Scored on the beverage scale\n")
	}

	if v.Traffic.Sugars != "" || v.Traffic.SatFat != "" || v.Traffic.Salt != "" {
		fmt.Fprintf(&sb, "Traffic lights: sugars %s, saturated fat %s, salt %s\n",
			colorTraffic(v.Traffic.Sugars),
			colorTraffic(v.Traffic.SatFat),
			colorTraffic(v.Traffic.Salt))
	}

	if line := nutritionSummary(v.Nutrition); line != "" {
		fmt.Fprintf(&sb, "Per 100g/ml: %s\n", line)
	}

	if len(v.Additives) > 0 {
		sb.WriteString("\nAdditives:\n")
		for _, a := range v.Additives {
			name := a.Name
			if name == "" {
				name = "unnamed additive"
			}
			fmt.Fprintf(&sb, "  %s %s [%s]\n", a.Code, name, colorRisk(a.Risk))
		}
	}

	if len(v.Allergens) > 0 {
		fmt.Fprintf(&sb, "\nAllergens: %s\n", strings.Join(v.Allergens, ", "))
	}

	if len(v.Positives) > 0 {
		sb.WriteString("\nPositives:\n")
		for _, p := range v.Positives {
			fmt.Fprintf(&sb, "  + %s\n", p)
		}
	}

	if len(v.Negatives) > 0 {
		sb.WriteString("\nNegatives:\n")
		for _, n := range v.Negatives {
			fmt.Fprintf(&sb, "  - %s\n", n)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// TableHeaders implements the tableProvider contract used by `-o table`.
func (v reportView) TableHeaders() []string {
	return []string{"Field", "Value", "Level"}
}

// TableRows renders a fixed-shape overview so scripted consumers can rely on
// row positions. Missing nutrient values show as "-".
func (v reportView) TableRows() [][]string {
	name := v.Name
	if name == "" {
		name = "-"
	}

	rows := [][]string{
		{"Product", name, ""},
		{"Barcode", dashIfEmpty(v.Barcode), ""},
		{"Score", fmt.Sprintf("%d/100", v.Score), ""},
		{"Grade", colorGrade(v.Grade), ""},
		{"Energy", formatAmount(v.Nutrition.EnergyKJ, "kJ"), ""},
		{"Sugars", formatAmount(v.Nutrition.SugarG, "g"), colorTraffic(v.Traffic.Sugars)},
		{"Saturated fat", formatAmount(v.Nutrition.SatFatG, "g"), colorTraffic(v.Traffic.SatFat)},
		{"Trans fat", formatAmount(v.Nutrition.TransFatG, "g"), ""},
		{"Sodium", formatAmount(v.Nutrition.SodiumMG, "mg"), colorTraffic(v.Traffic.Salt)},
		{"Fiber", formatAmount(v.Nutrition.FiberG, "g"), ""},
		{"Protein", formatAmount(v.Nutrition.ProteinG, "g"), ""},
		{"Fruit/veg", formatAmount(v.Nutrition.FruitPct, "%"), ""},
		{"Additives", fmt.Sprintf("%d", len(v.Additives)), ""},
	}

	return rows
}

// nutritionSummary joins the declared nutrient values into one line, skipping
// anything the label did not state.
func nutritionSummary(n client.Nutrition) string {
	parts := make([]string, 0, 8)

	appendPart := func(label string, v *float64, unit string) {
		if v == nil {
			return
		}
		parts = append(parts, fmt.Sprintf("%s %s", label, formatAmount(v, unit)))
	}

	appendPart("energy", n.EnergyKJ, "kJ")
	appendPart("sugars", n.SugarG, "g")
	appendPart("saturated fat", n.SatFatG, "g")
	appendPart("trans fat", n.TransFatG, "g")
	appendPart("sodium", n.SodiumMG, "mg")
	appendPart("fiber", n.FiberG, "g")
	appendPart("protein", n.ProteinG, "g")
	appendPart("fruit/veg", n.FruitPct, "%")

	return strings.Join(parts, ", ")
}

// formatAmount renders a nutrient value with its unit, trimming the trailing
// zeros %g produces nothing useful for ("2.5 g", "750 mg", "40%").
func formatAmount(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	if unit == "%" {
		return fmt.Sprintf("%g%%", *v)
	}
	return fmt.Sprintf("%g %s", *v, unit)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func colorGrade(g common.Grade) string {
	switch g {
	case common.GradeAPlus, common.GradeA:
		return color.GreenString(string(g))
	case common.GradeB:
		return color.CyanString(string(g))
	case common.GradeC:
		return color.YellowString(string(g))
	case common.GradeD, common.GradeE:
		return color.RedString(string(g))
	default:
		return string(g)
	}
}

func colorTraffic(level common.TrafficLevel) string {
	switch level {
	case common.TrafficLow:
		return color.GreenString(string(level))
	case common.TrafficMedium:
		return color.YellowString(string(level))
	case common.TrafficHigh:
		return color.RedString(string(level))
	default:
		return string(level)
	}
}

func colorRisk(risk common.RiskLevel) string {
	switch risk {
	case common.RiskGenerallySafe:
		return color.GreenString(string(risk))
	case common.RiskCaution:
		return color.YellowString(string(risk))
	case common.RiskModerate, common.RiskAvoid:
		return color.RedString(string(risk))
	default:
		return string(risk)
	}
}
