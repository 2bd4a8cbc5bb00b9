package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf-chat/internal/metrics"
)

// PageExtractor decides, for one page, between embedded text and OCR.
type PageExtractor struct {
	ocr     Recognizer
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewPageExtractor(ocr Recognizer, logger *zap.Logger, rec *metrics.Recorder) *PageExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageExtractor{ocr: ocr, logger: logger, metrics: rec}
}

// ExtractPage returns the text of page. When the embedded text is shorter
// than MinPageChars and *budget is positive, one OCR attempt is charged to
// budget and, if it yields anything, its text is used instead. Failures never
// escape: they produce an outcome with Failed set and the placeholder text.
func (e *PageExtractor) ExtractPage(ctx context.Context, page Page, budget *int) (out PageOutcome) {
	n := page.Number()
	defer func() {
		if r := recover(); r != nil {
			out = e.failed(n, fmt.Errorf("panic: %v", r))
		}
	}()

	raw, err := page.Text()
	if err != nil {
		return e.failed(n, fmt.Errorf("read text: %w", err))
	}
	out = PageOutcome{PageNumber: n, Text: normalizeText(raw)}

	if sufficient(out.Text, MinPageChars) || e.ocr == nil || budget == nil || *budget <= 0 {
		e.observe(out)
		return out
	}

	*budget--
	e.metrics.OCRAttempt()
	e.logger.Debug("running OCR", zap.Int("page", n), zap.Int("native_chars", len(out.Text)), zap.Int("budget_left", *budget))

	img, err := page.Render(OCRScale)
	if err != nil {
		return e.failed(n, err)
	}
	text, err := e.ocr.Recognize(ctx, img)
	if err != nil {
		return e.failed(n, fmt.Errorf("ocr: %w", err))
	}
	if text = normalizeText(text); text != "" {
		out.Text = text
		out.UsedOCR = true
	}
	e.observe(out)
	return out
}

func (e *PageExtractor) failed(n int, err error) PageOutcome {
	e.logger.Warn("page extraction failed", zap.Int("page", n), zap.Error(err))
	e.metrics.ObservePage(metrics.SourceFailed)
	return PageOutcome{PageNumber: n, Text: pageErrorPlaceholder, Failed: true}
}

func (e *PageExtractor) observe(out PageOutcome) {
	switch {
	case out.UsedOCR:
		e.metrics.ObservePage(metrics.SourceOCR)
	case out.Text == "":
		e.metrics.ObservePage(metrics.SourceEmpty)
	default:
		e.metrics.ObservePage(metrics.SourceNative)
	}
}
