package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPageSufficiencyBoundary(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantOCR    bool
		wantBudget int
	}{
		{name: "19 chars falls back to OCR", text: strings.Repeat("a", 19), wantOCR: true, wantBudget: 4},
		{name: "20 chars is enough", text: strings.Repeat("a", 20), wantOCR: false, wantBudget: 5},
		{name: "empty falls back to OCR", text: "", wantOCR: true, wantBudget: 4},
		{name: "whitespace padding does not count", text: "  " + strings.Repeat("b", 19) + "\n\t ", wantOCR: true, wantBudget: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ocr := &fakeOCR{text: "recognized text from the scan"}
			page := &fakePage{number: 1, text: tt.text}
			budget := 5

			out := NewPageExtractor(ocr, nil, nil).ExtractPage(context.Background(), page, &budget)

			assert.Equal(t, tt.wantBudget, budget)
			assert.Equal(t, tt.wantOCR, out.UsedOCR)
			assert.False(t, out.Failed)
			if tt.wantOCR {
				assert.Equal(t, 1, ocr.calls)
				assert.Equal(t, 1, page.renders)
				assert.Equal(t, "recognized text from the scan", out.Text)
			} else {
				assert.Zero(t, ocr.calls)
				assert.Zero(t, page.renders)
			}
		})
	}
}

func TestExtractPageNormalizesWhitespace(t *testing.T) {
	page := &fakePage{number: 3, text: "  Quarterly\n\n report \t for   the board  "}
	budget := 1

	out := NewPageExtractor(&fakeOCR{}, nil, nil).ExtractPage(context.Background(), page, &budget)

	assert.Equal(t, PageOutcome{PageNumber: 3, Text: "Quarterly report for the board"}, out)
	assert.Equal(t, 1, budget)
}

func TestExtractPageBudgetExhaustedKeepsNativeText(t *testing.T) {
	ocr := &fakeOCR{text: "never used"}
	page := &fakePage{number: 2, text: "12"}
	budget := 0

	out := NewPageExtractor(ocr, nil, nil).ExtractPage(context.Background(), page, &budget)

	assert.Equal(t, PageOutcome{PageNumber: 2, Text: "12"}, out)
	assert.Zero(t, ocr.calls)
	assert.Zero(t, page.renders)
	assert.Equal(t, 0, budget)
}

func TestExtractPageEmptyOCRKeepsNativeText(t *testing.T) {
	ocr := &fakeOCR{text: "   \n "}
	page := &fakePage{number: 1, text: "iv"}
	budget := 2

	out := NewPageExtractor(ocr, nil, nil).ExtractPage(context.Background(), page, &budget)

	assert.Equal(t, "iv", out.Text)
	assert.False(t, out.UsedOCR)
	assert.Equal(t, 1, budget, "attempts are charged even when OCR finds nothing")
}

func TestExtractPageOCROutputNormalized(t *testing.T) {
	ocr := &fakeOCR{text: "line one\nline   two\n\n"}
	budget := 1

	out := NewPageExtractor(ocr, nil, nil).ExtractPage(context.Background(), &fakePage{number: 1}, &budget)

	assert.Equal(t, "line one line two", out.Text)
	assert.True(t, out.UsedOCR)
}

func TestExtractPageFailures(t *testing.T) {
	tests := []struct {
		name       string
		page       *fakePage
		ocr        *fakeOCR
		wantBudget int
	}{
		{name: "text error", page: &fakePage{number: 4, textErr: errBoom}, ocr: &fakeOCR{}, wantBudget: 3},
		{name: "panic in page data", page: &fakePage{number: 4, panicMsg: "malformed content stream"}, ocr: &fakeOCR{}, wantBudget: 3},
		{name: "render error", page: &fakePage{number: 4, renderErr: errBoom}, ocr: &fakeOCR{text: "x"}, wantBudget: 2},
		{name: "ocr error", page: &fakePage{number: 4}, ocr: &fakeOCR{err: errBoom}, wantBudget: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := 3

			out := NewPageExtractor(tt.ocr, nil, nil).ExtractPage(context.Background(), tt.page, &budget)

			assert.Equal(t, PageOutcome{PageNumber: 4, Text: pageErrorPlaceholder, Failed: true}, out)
			assert.Equal(t, tt.wantBudget, budget)
		})
	}
}

func TestExtractPageWithoutRecognizer(t *testing.T) {
	page := &fakePage{number: 1, text: "short"}
	budget := 3

	out := NewPageExtractor(nil, nil, nil).ExtractPage(context.Background(), page, &budget)

	assert.Equal(t, "short", out.Text)
	assert.Equal(t, 3, budget)
	assert.Zero(t, page.renders)
}
