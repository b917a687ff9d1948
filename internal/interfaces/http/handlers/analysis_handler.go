package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/turtacn/NutriLens/internal/application/analysis"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/ocr"
	"github.com/turtacn/NutriLens/pkg/errors"
)

// imageField is the documented multipart field for label photos; imageFieldAlias
// is accepted for clients that upload under the generic name.
const (
	imageField      = "image"
	imageFieldAlias = "file"
)

// AnalysisHandler handles the two direct-analysis endpoints: pasted label
// text and uploaded label photos.
type AnalysisHandler struct {
	analysisSvc analysis.Service
	engine      ocr.Engine
	maxBodySize int64
	logger      logging.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler. maxBodySize caps request
// bodies on both endpoints; engine may be nil when no recognizer is installed,
// in which case the image endpoint reports the OCR engine unavailable.
func NewAnalysisHandler(
	analysisSvc analysis.Service,
	engine ocr.Engine,
	maxBodySize int64,
	logger logging.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisSvc: analysisSvc,
		engine:      engine,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// AnalyzeText handles POST /api/v1/analyze/text.
func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req analysis.AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, errors.InvalidParam("invalid request body"))
		return
	}

	report, err := h.analysisSvc.AnalyzeText(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// AnalyzeImage handles POST /api/v1/analyze/image. The photo is recognized
// into plain text and scored through the same pipeline as pasted text; an
// empty recognition result still produces a (sparse, guardrailed) report.
func (h *AnalysisHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	if h.engine == nil {
		writeAppError(w, errors.OCRUnavailable("no recognition engine installed"))
		return
	}

	file, header, err := h.formFile(r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeAppError(w, errors.Wrap(err, errors.ErrCodeImageUnreadable, "reading upload failed"))
		return
	}

	h.logger.Debug("label image received",
		logging.String("filename", header.Filename),
		logging.Int("bytes", len(data)),
	)

	text, err := h.engine.ExtractText(r.Context(), data)
	if err != nil {
		h.logger.Error("image recognition failed",
			logging.String("filename", header.Filename),
			logging.Err(err),
		)
		writeAppError(w, err)
		return
	}

	report, err := h.analysisSvc.AnalyzeExtraction(r.Context(), ocr.ExtractedLabel{
		IngredientsText: text,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// formFile fetches the uploaded label photo, trying the documented field
// first and the alias second.
func (h *AnalysisHandler) formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(imageField)
	if err == nil {
		return file, header, nil
	}
	if err == http.ErrMissingFile {
		file, header, err = r.FormFile(imageFieldAlias)
		if err == nil {
			return file, header, nil
		}
		if err == http.ErrMissingFile {
			return nil, nil, errors.New(errors.ErrCodeImageRequired, "image is required (form field 'image')")
		}
	}
	return nil, nil, errors.Wrap(err, errors.ErrCodeBadRequest, "reading multipart form failed")
}
