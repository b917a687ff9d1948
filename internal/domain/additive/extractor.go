package additive

import (
	"regexp"
	"strings"
)

// codePattern recognizes additive codes. Prefixed form: E or INS, an optional
// hyphen/space separator, 3-4 digits, an optional letter a-d. Bare form: a
// 3-digit number in 100-199 with a mandatory letter suffix; the mandatory
// letter keeps best-before dates and net weights ("150 g", "2025") out.
var codePattern = regexp.MustCompile(`(?i)\b(?:(E|INS)\s*[-\s]?(\d{3,4}[a-d]?)|(1\d{2}[a-d]))\b`)

// ExtractCodes scans text for additive codes and returns them canonicalized,
// deduplicated, in first-seen order. A bare numeric body canonicalizes to the
// E form; an occurrence written with an INS prefix keeps the INS form. Safe
// to run over whole labels; the bare-form suffix rule filters the numeric
// noise outside the ingredients list.
func ExtractCodes(text string) []string {
	if text == "" {
		return nil
	}
	matches := codePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		var canon string
		switch {
		case m[3] != "":
			canon = "E" + strings.ToUpper(m[3])
		case strings.EqualFold(m[1], "INS"):
			canon = "INS" + strings.ToUpper(m[2])
		default:
			canon = "E" + strings.ToUpper(m[2])
		}
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		out = append(out, canon)
	}
	return out
}
