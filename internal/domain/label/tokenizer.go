package label

import (
	"regexp"
	"strconv"
	"strings"
)

// IngredientEntry is one entry of the ingredients list, in label order. The
// percentage annotation is optional; Percent stays nil when the label does
// not declare one.
type IngredientEntry struct {
	Name    string   `json:"name"`
	Percent *float64 `json:"percent"`
}

var (
	percentParenPattern = regexp.MustCompile(`\((\d{1,3}(?:\.\d+)?)\s*%\)`)
	percentBarePattern  = regexp.MustCompile(`\b(\d{1,3}(?:\.\d+)?)\s*%`)
	spaceRunPattern     = regexp.MustCompile(`\s{2,}`)
)

// SplitTopLevel splits s on commas at parenthesis depth zero, so nested
// sub-lists like "emulsifier (E471, E322)" survive as one token. Stray
// closing parens clamp at depth zero rather than going negative. Tokens are
// trimmed and empty tokens dropped; order is preserved.
func SplitTopLevel(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0

	flush := func() {
		if tok := strings.TrimSpace(cur.String()); tok != "" {
			out = append(out, tok)
		}
		cur.Reset()
	}

	for _, r := range s {
		switch r {
		case '(':
			depth++
			cur.WriteRune(r)
		case ')':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case ',':
			if depth == 0 {
				flush()
			} else {
				cur.WriteRune(r)
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// ParseEntries tokenizes an ingredients block into ordered entries. Each
// token is trimmed of " .;", then a percentage annotation is pulled out and
// removed from the display name: the parenthesized form "(30%)" is tried
// first, a bare "30%" otherwise. Leftover double spaces collapse and edge
// parens are stripped; empty names are dropped.
func ParseEntries(block string) []IngredientEntry {
	tokens := SplitTopLevel(block)
	entries := make([]IngredientEntry, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.Trim(tok, " .;")
		var percent *float64
		loc := percentParenPattern.FindStringSubmatchIndex(tok)
		if loc == nil {
			loc = percentBarePattern.FindStringSubmatchIndex(tok)
		}
		if loc != nil {
			if v, err := strconv.ParseFloat(tok[loc[2]:loc[3]], 64); err == nil {
				percent = &v
			}
			tok = tok[:loc[0]] + tok[loc[1]:]
		}
		name := spaceRunPattern.ReplaceAllString(tok, " ")
		name = strings.Trim(name, " ()")
		if name == "" {
			continue
		}
		entries = append(entries, IngredientEntry{Name: name, Percent: percent})
	}
	return entries
}
