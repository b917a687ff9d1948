// Package common defines the shared vocabulary types used across the
// NutriLens platform: additive risk tiers, traffic-light bands, letter grades,
// nutrition bases, and analysis sources. Every layer (domain, application,
// interfaces, SDK) uses these types so that wire values stay consistent.
package common

import (
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// RiskLevel — additive risk classification
// ─────────────────────────────────────────────────────────────────────────────

// RiskLevel classifies a food additive by health concern tier.
type RiskLevel string

const (
	// RiskGenerallySafe marks additives with no known concern at typical intake.
	RiskGenerallySafe RiskLevel = "generally_safe"
	// RiskCaution marks additives flagged for sensitive groups (e.g. glutamates).
	RiskCaution RiskLevel = "caution"
	// RiskModerate marks additives with documented moderate concern.
	RiskModerate RiskLevel = "moderate"
	// RiskAvoid marks additives with strong adverse evidence.
	RiskAvoid RiskLevel = "avoid"
	// RiskUnknown marks additives absent from the catalog.
	RiskUnknown RiskLevel = "unknown"
)

func (r RiskLevel) String() string { return string(r) }

// Valid reports whether r is one of the defined tiers.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskGenerallySafe, RiskCaution, RiskModerate, RiskAvoid, RiskUnknown:
		return true
	}
	return false
}

// ParseRiskLevel folds free-form tier strings ("generally safe", "AVOID") to a
// RiskLevel, defaulting to RiskUnknown.
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, " ", "_"))) {
	case "generally_safe", "safe":
		return RiskGenerallySafe
	case "caution":
		return RiskCaution
	case "moderate":
		return RiskModerate
	case "avoid":
		return RiskAvoid
	}
	return RiskUnknown
}

// ─────────────────────────────────────────────────────────────────────────────
// TrafficLevel — regulatory-style nutrient banding
// ─────────────────────────────────────────────────────────────────────────────

// TrafficLevel is the qualitative band of a nutrient level.
type TrafficLevel string

const (
	TrafficLow     TrafficLevel = "low"
	TrafficMedium  TrafficLevel = "medium"
	TrafficHigh    TrafficLevel = "high"
	TrafficUnknown TrafficLevel = "unknown"
)

func (t TrafficLevel) String() string { return string(t) }

// Valid reports whether t is one of the defined bands.
func (t TrafficLevel) Valid() bool {
	switch t {
	case TrafficLow, TrafficMedium, TrafficHigh, TrafficUnknown:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Grade — letter grade derived from the health score
// ─────────────────────────────────────────────────────────────────────────────

// Grade is the A+–E letter grade assigned to a scored product.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeE     Grade = "E"
)

func (g Grade) String() string { return string(g) }

// Valid reports whether g is one of the defined grades.
func (g Grade) Valid() bool {
	switch g {
	case GradeAPlus, GradeA, GradeB, GradeC, GradeD, GradeE:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Basis — scale a nutrient value is stated on
// ─────────────────────────────────────────────────────────────────────────────

// Basis states whether nutrition figures are per 100 g, per 100 ml, per
// serving, or of unknown scale.
type Basis string

const (
	BasisPer100G    Basis = "per_100g"
	BasisPer100ML   Basis = "per_100ml"
	BasisPerServing Basis = "per_serving"
	BasisUnknown    Basis = "unknown"
)

func (b Basis) String() string { return string(b) }

// ParseBasis folds a free-form basis string to a Basis, defaulting to
// BasisUnknown.
func ParseBasis(s string) Basis {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per_100g", "100g", "per100g":
		return BasisPer100G
	case "per_100ml", "100ml", "per100ml":
		return BasisPer100ML
	case "per_serving", "serving":
		return BasisPerServing
	}
	return BasisUnknown
}

// PerHundred reports whether values on this basis are already per-100 and need
// no serving rescale.
func (b Basis) PerHundred() bool {
	return b == BasisPer100G || b == BasisPer100ML
}

// ─────────────────────────────────────────────────────────────────────────────
// Source — origin of an analysis
// ─────────────────────────────────────────────────────────────────────────────

// Source identifies which ingestion path produced an analysis report.
type Source string

const (
	// SourceOpenFoodFacts marks reports built from a barcode lookup.
	SourceOpenFoodFacts Source = "openfoodfacts"
	// SourceOCR marks reports built from a recognized label image.
	SourceOCR Source = "ocr"
	// SourceOCRText marks reports built from caller-supplied label text.
	SourceOCRText Source = "ocr-text"
)

func (s Source) String() string { return string(s) }

// ─────────────────────────────────────────────────────────────────────────────
// Context keys
// ─────────────────────────────────────────────────────────────────────────────

// ContextKey is the typed key for values NutriLens stores in request contexts.
type ContextKey string

const (
	// ContextKeyRequestID is the context key for the per-request UUID.
	ContextKeyRequestID ContextKey = "request_id"
)
