package client

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// imageUploadField is the multipart form field the server reads the label
// photo from.
const imageUploadField = "image"

// AnalysisClient calls the direct-analysis endpoints.
type AnalysisClient struct {
	client *Client
}

// AnalyzeTextRequest carries pasted or pre-recognized label text.
type AnalyzeTextRequest struct {
	IngredientsText string `json:"ingredients_text"`
	Name            string `json:"name,omitempty"`
	Brand           string `json:"brand,omitempty"`
}

// AnalyzeText scores raw ingredient-list text.
// POST /api/v1/analyze/text
func (ac *AnalysisClient) AnalyzeText(ctx context.Context, req AnalyzeTextRequest) (*Report, error) {
	if strings.TrimSpace(req.IngredientsText) == "" {
		return nil, invalidArg("ingredients_text is required")
	}

	var report Report
	if err := ac.client.post(ctx, "/api/v1/analyze/text", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeImage uploads a label photo for text recognition and scoring.  The
// image is read fully up front so the request can be retried.  filename is
// advisory; the server keys on content alone.
// POST /api/v1/analyze/image
func (ac *AnalysisClient) AnalyzeImage(ctx context.Context, filename string, image io.Reader) (*Report, error) {
	if image == nil {
		return nil, invalidArg("image is required")
	}
	content, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(content) == 0 {
		return nil, invalidArg("image is empty")
	}
	if filename == "" {
		filename = "label.jpg"
	}

	var report Report
	if err := ac.client.upload(ctx, "/api/v1/analyze/image", imageUploadField, filename, content, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
