package additive

import (
	"strings"

	"github.com/turtacn/NutriLens/pkg/types/common"
)

// Record is one classified additive occurrence as it appears in an analysis
// report.
type Record struct {
	Code string           `json:"code"`
	Name string           `json:"name"`
	Risk common.RiskLevel `json:"risk"`
}

// Classify resolves each canonical code against the catalog. Lookup order:
// direct, then with the E/INS prefix swapped, then prefix-stripped retrying
// both forms. Unresolvable codes fall back to an unknown-risk record rather
// than being dropped, so the report still surfaces them.
func Classify(codes []string) []Record {
	if len(codes) == 0 {
		return nil
	}
	out := make([]Record, 0, len(codes))
	for _, code := range codes {
		key := strings.ToUpper(strings.TrimSpace(code))
		info, ok := lookup(key)
		if !ok {
			info = Info{Name: "Unknown additive", Risk: common.RiskUnknown}
		}
		out = append(out, Record{Code: key, Name: info.Name, Risk: info.Risk})
	}
	return out
}

func lookup(key string) (Info, bool) {
	if info, ok := catalog[key]; ok {
		return info, true
	}
	switch {
	case strings.HasPrefix(key, "INS"):
		if info, ok := catalog["E"+strings.TrimPrefix(key, "INS")]; ok {
			return info, true
		}
	case strings.HasPrefix(key, "E"):
		if info, ok := catalog["INS"+strings.TrimPrefix(key, "E")]; ok {
			return info, true
		}
	}
	bare := strings.TrimPrefix(strings.TrimPrefix(key, "INS"), "E")
	if info, ok := catalog["E"+bare]; ok {
		return info, true
	}
	if info, ok := catalog["INS"+bare]; ok {
		return info, true
	}
	return Info{}, false
}
