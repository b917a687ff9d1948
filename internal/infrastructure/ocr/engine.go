// Package ocr adapts image-to-text recognition for the label analysis
// pipeline.  The Engine interface hides the concrete recognizer; the shipped
// implementation shells out to the tesseract binary.  Recognized text is
// best-effort: it may be empty or garbled, and downstream parsing is expected
// to degrade rather than fail.
package ocr

import "context"

// Engine turns a label photograph into plain text.
type Engine interface {
	// ExtractText recognizes text in the given image bytes.  The returned
	// string may be empty when the image contains no legible text; that is
	// not an error.  Errors indicate the recognizer itself failed to run.
	ExtractText(ctx context.Context, image []byte) (string, error)
}
