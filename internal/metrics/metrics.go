// Package metrics exposes Prometheus instrumentation for document extraction.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Page sources recorded by ObservePage.
const (
	SourceNative = "native"
	SourceOCR    = "ocr"
	SourceFailed = "failed"
	SourceEmpty  = "empty"
)

// Document outcomes recorded by ObserveDocument.
const (
	OutcomeOK         = "ok"
	OutcomeOpenFailed = "open_failed"
	OutcomeEmpty      = "empty"
)

// Recorder groups the extraction collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	documents   *prometheus.CounterVec
	pages       *prometheus.CounterVec
	ocrAttempts prometheus.Counter
	duration    prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pdfchat_documents_total",
			Help: "Documents processed by the extraction pipeline, by outcome",
		}, []string{"outcome"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pdfchat_pages_total",
			Help: "Pages processed, by the source of their text",
		}, []string{"source"}),
		ocrAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pdfchat_ocr_attempts_total",
			Help: "OCR attempts charged against per-document budgets",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pdfchat_extraction_duration_seconds",
			Help:    "Wall-clock time of a document extraction",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	if reg != nil {
		reg.MustRegister(r.documents, r.pages, r.ocrAttempts, r.duration)
	}
	return r
}

func (r *Recorder) ObservePage(source string) {
	if r == nil {
		return
	}
	r.pages.WithLabelValues(source).Inc()
}

func (r *Recorder) OCRAttempt() {
	if r == nil {
		return
	}
	r.ocrAttempts.Inc()
}

func (r *Recorder) ObserveDocument(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.documents.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}
