package ocr

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/NutriLens/internal/config"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NutriLens/pkg/errors"
)

// commandRunner executes a binary with the image on stdin and returns stdout.
// Abstracted so tests can run without a tesseract installation.
type commandRunner func(ctx context.Context, name string, stdin []byte, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// TesseractEngine implements Engine by shelling out to the tesseract binary.
// Each image is recognized once per configured page-segmentation mode and the
// longest output wins; ingredient labels vary between dense blocks and sparse
// fragments, and no single mode handles both.
type TesseractEngine struct {
	binary    string
	languages string
	timeout   time.Duration
	maxBytes  int64
	psModes   []int
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
	run       commandRunner
}

// NewTesseractEngine builds a TesseractEngine from configuration.  metrics
// may be nil.
func NewTesseractEngine(cfg config.OCRConfig, log logging.Logger, metrics *prometheus.AppMetrics) *TesseractEngine {
	modes := cfg.PSModes
	if len(modes) == 0 {
		modes = config.DefaultOCRPSModes
	}
	return &TesseractEngine{
		binary:    cfg.BinaryPath,
		languages: cfg.Languages,
		timeout:   cfg.Timeout,
		maxBytes:  cfg.MaxImageBytes,
		psModes:   modes,
		logger:    log,
		metrics:   metrics,
		run:       execRunner,
	}
}

// ExtractText recognizes the image with every configured page-segmentation
// mode and returns the longest cleaned output.  A missing binary yields an
// OCR-unavailable error; per-mode failures are tolerated as long as at least
// one mode succeeds.
func (e *TesseractEngine) ExtractText(ctx context.Context, image []byte) (string, error) {
	start := time.Now()
	text, err := e.extract(ctx, image)
	if e.metrics != nil {
		prometheus.RecordOCRRun(e.metrics, err, time.Since(start))
	}
	return text, err
}

func (e *TesseractEngine) extract(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New(errors.ErrCodeImageUnreadable, "empty image data")
	}
	if e.maxBytes > 0 && int64(len(image)) > e.maxBytes {
		return "", errors.New(errors.ErrCodeImageUnreadable, "image exceeds size limit").
			WithDetail(fmt.Sprintf("size=%d limit=%d", len(image), e.maxBytes))
	}

	var (
		best    string
		lastErr error
		ran     bool
	)
	for _, psm := range e.psModes {
		out, err := e.runOnce(ctx, image, psm)
		if err != nil {
			lastErr = err
			if stderrors.Is(err, exec.ErrNotFound) {
				// No point trying further modes without a binary.
				break
			}
			e.logger.Debug("tesseract run failed",
				logging.Int("psm", psm),
				logging.Err(err),
			)
			continue
		}
		ran = true
		text := strings.TrimSpace(string(out))
		e.logger.Debug("tesseract run completed",
			logging.Int("psm", psm),
			logging.Int("chars", len(text)),
		)
		if len(text) > len(best) {
			best = text
		}
	}

	if !ran {
		if stderrors.Is(lastErr, exec.ErrNotFound) {
			return "", errors.OCRUnavailable("tesseract binary not found").
				WithCause(lastErr).WithDetail("binary=" + e.binary)
		}
		if lastErr == nil {
			return "", errors.New(errors.ErrCodeOCRFailed, "no recognition modes configured")
		}
		return "", errors.Wrap(lastErr, errors.ErrCodeOCRFailed, "text recognition failed")
	}
	return CleanRecognizedText(best), nil
}

func (e *TesseractEngine) runOnce(ctx context.Context, image []byte, psm int) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	args := []string{"stdin", "stdout", "-l", e.languages, "--psm", strconv.Itoa(psm)}
	return e.run(ctx, e.binary, image, args...)
}

// Name identifies this dependency in health reports.
func (e *TesseractEngine) Name() string { return "tesseract" }

// Check verifies the tesseract binary is resolvable on PATH (or at the
// configured absolute path) without running a recognition.
func (e *TesseractEngine) Check(_ context.Context) error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return errors.OCRUnavailable("tesseract binary not found").
			WithCause(err).WithDetail("binary=" + e.binary)
	}
	return nil
}
