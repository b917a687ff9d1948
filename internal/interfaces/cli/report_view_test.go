package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/turtacn/NutriLens/pkg/client"
	"github.com/turtacn/NutriLens/pkg/types/common"
)

func fptr(v float64) *float64 { return &v }

func sampleReport() *client.Report {
	return &client.Report{
		Barcode: "737628064502",
		Name:    "Rice Noodles",
		Brand:   "Thai Kitchen",
		Score:   82,
		Grade:   common.GradeA,
		Traffic: client.TrafficLights{
			Sugars: common.TrafficLow,
			SatFat: common.TrafficLow,
			Salt:   common.TrafficHigh,
		},
		IngredientsText: "rice, water, salt",
		Nutrition: client.Nutrition{
			EnergyKJ: fptr(1580),
			SugarG:   fptr(2.5),
			SodiumMG: fptr(750),
			SatFatG:  fptr(0.5),
			ProteinG: fptr(6.7),
		},
		Additives: []client.Additive{
			{Code: "E330", Name: "citric acid", Risk: common.RiskGenerallySafe},
		},
		Allergens: []string{"gluten"},
		Positives: []string{"low in saturated fat"},
		Negatives: []string{"high in sodium"},
		Source:    common.SourceOpenFoodFacts,
	}
}

func TestReportView_String(t *testing.T) {
	out := newReportView(sampleReport()).String()

	for _, want := range []string{
		"Rice Noodles (Thai Kitchen)",
		"Barcode: 737628064502",
		"Source: openfoodfacts",
		"Score: 82/100",
		"Grade: A",
		"salt high",
		"sugars 2.5 g",
		"sodium 750 mg",
		"E330 citric acid [generally_safe]",
		"Allergens: gluten",
		"+ low in saturated fat",
		"- high in sodium",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary should contain %q, got:\n%s", want, out)
		}
	}
}

func TestReportView_String_Beverage(t *testing.T) {
	r := sampleReport()
	r.IsBeverage = true

	out := newReportView(r).String()
	if !strings.Contains(out, "beverage") {
		t.Errorf("summary should flag the beverage scale, got:\n%s", out)
	}
}

func TestReportView_String_Minimal(t *testing.T) {
	r := &client.Report{Score: 65, Grade: common.GradeB, Source: common.SourceOCRText}

	out := newReportView(r).String()
	if !strings.Contains(out, "Unnamed product") {
		t.Errorf("summary should name the product placeholder, got:\n%s", out)
	}
	if !strings.Contains(out, "Score: 65/100") {
		t.Errorf("summary should contain the score, got:\n%s", out)
	}
	for _, absent := range []string{"Barcode:", "Traffic lights:", "Per 100g/ml:", "Additives:", "Allergens:", "Positives:", "Negatives:"} {
		if strings.Contains(out, absent) {
			t.Errorf("summary should omit %q for empty fields, got:\n%s", absent, out)
		}
	}
}

func TestReportView_TableRows(t *testing.T) {
	view := newReportView(sampleReport())

	headers := view.TableHeaders()
	if len(headers) != 3 {
		t.Fatalf("expected 3 table headers, got %d", len(headers))
	}

	rows := view.TableRows()
	byField := make(map[string][]string, len(rows))
	for _, row := range rows {
		if len(row) != 3 {
			t.Fatalf("every row should have 3 cells, got %d in %v", len(row), row)
		}
		byField[row[0]] = row
	}

	if got := byField["Score"][1]; got != "82/100" {
		t.Errorf("Score row should show 82/100, got %q", got)
	}
	if got := byField["Sodium"]; got[1] != "750 mg" || got[2] != "high" {
		t.Errorf("Sodium row should show value and level, got %v", got)
	}
	if got := byField["Fiber"][1]; got != "-" {
		t.Errorf("undeclared fiber should show as dash, got %q", got)
	}
	if got := byField["Additives"][1]; got != "1" {
		t.Errorf("Additives row should show the count, got %q", got)
	}
}

func TestReportView_JSONMatchesReport(t *testing.T) {
	view := newReportView(sampleReport())

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["score"] != float64(82) {
		t.Errorf("JSON output should carry the report fields inline, got %v", decoded["score"])
	}
	if decoded["grade"] != "A" {
		t.Errorf("expected grade A in JSON output, got %v", decoded["grade"])
	}
	if _, ok := decoded["Report"]; ok {
		t.Error("embedded report should not appear as a nested object")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value *float64
		unit  string
		want  string
	}{
		{nil, "g", "-"},
		{fptr(2.5), "g", "2.5 g"},
		{fptr(750), "mg", "750 mg"},
		{fptr(1580), "kJ", "1580 kJ"},
		{fptr(40), "%", "40%"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.value, tt.unit); got != tt.want {
			t.Errorf("formatAmount(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}
