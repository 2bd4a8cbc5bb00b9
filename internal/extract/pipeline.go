package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf-chat/internal/metrics"
)

// Pipeline turns a PDF into page-marked plain text. It holds no per-document
// state, so a single Pipeline may serve concurrent Extract calls.
type Pipeline struct {
	open       Opener
	recognizer Recognizer
	logger     *zap.Logger
	metrics    *metrics.Recorder
	pages      *PageExtractor
}

type Option func(*Pipeline)

func WithOpener(open Opener) Option {
	return func(p *Pipeline) { p.open = open }
}

func WithRecognizer(r Recognizer) Option {
	return func(p *Pipeline) { p.recognizer = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(p *Pipeline) { p.metrics = r }
}

// New builds a Pipeline. Without options it opens documents with OpenPDF and
// runs OCR through Tesseract.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{open: OpenPDF, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.recognizer == nil {
		p.recognizer = NewTesseract()
	}
	p.pages = NewPageExtractor(p.recognizer, p.logger, p.metrics)
	return p
}

// Extract processes every page of src in order. Page-level problems are
// folded into the text; only an unopenable document or an effectively empty
// result is reported as an error.
func (p *Pipeline) Extract(ctx context.Context, src SourceFile) (Result, error) {
	start := time.Now()
	log := p.logger.With(zap.String("file", src.Name))

	doc, err := p.open(src.Data)
	if err != nil {
		p.metrics.ObserveDocument(metrics.OutcomeOpenFailed, time.Since(start))
		if !errors.Is(err, ErrDocumentOpen) {
			err = fmt.Errorf("%w: %v", ErrDocumentOpen, err)
		}
		return Result{}, err
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.Warn("closing document", zap.Error(err))
		}
	}()

	total := doc.NumPages()
	budget := MaxOCRPages
	blocks := make([]string, 0, total)
	var ocrPages, failedPages int
	for n := 1; n <= total; n++ {
		out := p.processPage(ctx, doc, n, &budget)
		if out.UsedOCR {
			ocrPages++
		}
		if out.Failed {
			failedPages++
		}
		if out.Text == "" {
			continue
		}
		blocks = append(blocks, pageBlock(n, out.Text))
	}

	text := strings.TrimSpace(strings.Join(blocks, "\n"))
	if text == "" || utf8.RuneCountInString(text) < MinDocumentChars {
		p.metrics.ObserveDocument(metrics.OutcomeEmpty, time.Since(start))
		log.Info("no usable text extracted", zap.Int("pages", total), zap.Int("ocr_attempts", MaxOCRPages-budget))
		return Result{}, ErrEmptyOrUnreadable
	}

	p.metrics.ObserveDocument(metrics.OutcomeOK, time.Since(start))
	log.Info("document extracted",
		zap.Int("pages", total),
		zap.Int("ocr_attempts", MaxOCRPages-budget),
		zap.Int("ocr_pages", ocrPages),
		zap.Int("failed_pages", failedPages),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Result{Text: text, PageCount: total}, nil
}

// processPage looks up page n and extracts it. A lookup failure becomes a
// failed outcome like any other page error.
func (p *Pipeline) processPage(ctx context.Context, doc Document, n int, budget *int) (out PageOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = p.pages.failed(n, fmt.Errorf("load page: panic: %v", r))
		}
	}()
	page, err := doc.Page(n)
	if err != nil {
		return p.pages.failed(n, fmt.Errorf("load page: %w", err))
	}
	return p.pages.ExtractPage(ctx, page, budget)
}
