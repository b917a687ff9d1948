// Package analysis orchestrates the label-analysis pipeline: text
// normalization, ingredient/additive/allergen parsing, nutrition coercion,
// beverage classification and scoring.  The domain packages stay pure; this
// layer owns per-call logging and metrics and shapes the response DTO.
package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/NutriLens/internal/domain/additive"
	"github.com/turtacn/NutriLens/internal/domain/allergen"
	"github.com/turtacn/NutriLens/internal/domain/label"
	"github.com/turtacn/NutriLens/internal/domain/nutrition"
	"github.com/turtacn/NutriLens/internal/domain/score"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NutriLens/internal/infrastructure/ocr"
	"github.com/turtacn/NutriLens/internal/infrastructure/openfoodfacts"
	"github.com/turtacn/NutriLens/pkg/errors"
	"github.com/turtacn/NutriLens/pkg/types/common"
)

// defaultScanName labels reports whose caller supplied no product name.
const defaultScanName = "Ingredients scan"

// unknownProductName labels barcode reports whose upstream record has no name.
const unknownProductName = "Unknown"

// AnalyzeTextRequest carries caller-supplied label text plus optional
// identity fields.
type AnalyzeTextRequest struct {
	IngredientsText string `json:"ingredients_text"`
	Name            string `json:"name,omitempty"`
	Brand           string `json:"brand,omitempty"`
}

// Service runs the analysis pipeline for each ingestion path.
type Service interface {
	// AnalyzeText analyzes pasted or pre-recognized label text.  Nutrition
	// facts and beverage class cannot be established from text alone, so the
	// score runs on an empty profile.
	AnalyzeText(ctx context.Context, req AnalyzeTextRequest) (*Report, error)

	// AnalyzeExtraction analyzes a structured label extraction, typically
	// assembled from an OCR pass plus client-side field pickup.
	AnalyzeExtraction(ctx context.Context, lbl ocr.ExtractedLabel) (*Report, error)

	// AnalyzeProduct analyzes an Open Food Facts product record.
	AnalyzeProduct(ctx context.Context, barcode string, product openfoodfacts.Product) (*Report, error)
}

type serviceImpl struct {
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// NewService assembles the analysis service.  metrics may be nil, in which
// case only logs are emitted.
func NewService(logger logging.Logger, metrics *prometheus.AppMetrics) Service {
	return &serviceImpl{
		logger:  logger,
		metrics: metrics,
	}
}

func (s *serviceImpl) AnalyzeText(_ context.Context, req AnalyzeTextRequest) (*Report, error) {
	start := time.Now()
	text := strings.TrimSpace(req.IngredientsText)
	if text == "" {
		err := errors.New(errors.ErrCodeEmptyIngredientsText, "ingredients_text is required")
		s.record(common.SourceOCRText, nil, err, start)
		return nil, err
	}

	s.logger.Debug("analyzing ingredients text",
		logging.Int("text_len", len(text)),
	)

	report := s.buildReport(text, nutrition.Profile{}, false, common.SourceOCRText)
	report.Name = strings.TrimSpace(req.Name)
	if report.Name == "" {
		report.Name = defaultScanName
	}
	report.Brand = strings.TrimSpace(req.Brand)

	s.record(common.SourceOCRText, report, nil, start)
	return report, nil
}

func (s *serviceImpl) AnalyzeExtraction(_ context.Context, lbl ocr.ExtractedLabel) (*Report, error) {
	start := time.Now()
	s.logger.Debug("analyzing structured extraction",
		logging.Int("text_len", len(lbl.IngredientsText)),
		logging.Bool("beverage", lbl.Beverage),
	)

	// No text validation here: a photo of a bare nutrition table has no
	// ingredients list, and the profile alone still scores.
	report := s.buildReport(lbl.IngredientsText, lbl.Profile, lbl.Beverage, common.SourceOCR)
	report.Name = strings.TrimSpace(lbl.Name)
	if report.Name == "" {
		report.Name = defaultScanName
	}
	report.Brand = strings.TrimSpace(lbl.Brand)

	s.record(common.SourceOCR, report, nil, start)
	return report, nil
}

func (s *serviceImpl) AnalyzeProduct(_ context.Context, barcode string, product openfoodfacts.Product) (*Report, error) {
	start := time.Now()
	s.logger.Debug("analyzing product record",
		logging.String("barcode", barcode),
		logging.String("name", product.ProductName),
	)

	profile := nutrition.Coerce(product.Nutriments)
	text := product.ResolveIngredientsText()
	beverage := nutrition.IsBeverage(product.ProductName, product.Categories, product.Quantity)

	report := s.buildReport(text, profile, beverage, common.SourceOpenFoodFacts)
	report.Barcode = barcode
	report.Name = strings.TrimSpace(product.ProductName)
	if report.Name == "" {
		report.Name = unknownProductName
	}
	report.Brand = product.PrimaryBrand()
	report.Image = product.ResolveImageURL()

	s.record(common.SourceOpenFoodFacts, report, nil, start)
	return report, nil
}

// buildReport runs the shared pipeline over one label text and profile.
// Structured ingredients come only from a marked "ingredients" section;
// additive, allergen and keyword scans cover the whole text so unsectioned
// labels still surface findings.
func (s *serviceImpl) buildReport(rawText string, profile nutrition.Profile, beverage bool, src common.Source) *Report {
	normalized := label.Normalize(rawText)

	var entries []label.IngredientEntry
	if block := label.ExtractIngredients(normalized); block != "" {
		entries = label.ParseEntries(block)
	}
	additives := additive.Classify(additive.ExtractCodes(normalized))
	allergens := allergen.Detect(normalized)

	result := score.Compute(profile, additives, normalized, beverage)

	r := &Report{
		Score:                 result.Score,
		Grade:                 result.Grade,
		IsBeverage:            beverage,
		Traffic:               result.Traffic,
		IngredientsText:       strings.TrimSpace(rawText),
		StructuredIngredients: entries,
		Nutrition:             profile,
		Additives:             additives,
		Allergens:             allergens,
		Positives:             result.Positives,
		Negatives:             result.Negatives,
		Source:                src,
	}
	r.ensureLists()
	return r
}

func (s *serviceImpl) record(src common.Source, report *Report, err error, start time.Time) {
	elapsed := time.Since(start)
	if err != nil {
		if s.metrics != nil {
			prometheus.RecordAnalysis(s.metrics, src.String(), err, elapsed, 0, 0)
		}
		s.logger.Warn("analysis rejected",
			logging.String("source", src.String()),
			logging.Err(err),
		)
		return
	}
	if s.metrics != nil {
		prometheus.RecordAnalysis(s.metrics, src.String(), nil, elapsed, report.Score, len(report.Additives))
	}
	s.logger.Info("analysis completed",
		logging.String("source", src.String()),
		logging.String("name", report.Name),
		logging.Int("score", report.Score),
		logging.String("grade", report.Grade.String()),
		logging.Int("additives", len(report.Additives)),
		logging.Duration("elapsed", elapsed),
	)
}
