package extract

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	fitz "github.com/gen2brain/go-fitz"
	rpdf "rsc.io/pdf"
)

// Page is one page of an open document.
type Page interface {
	// Number is the 1-based page number.
	Number() int
	// Text returns the page's embedded text, unnormalized.
	Text() (string, error)
	// Render rasterizes the page at scale and returns PNG bytes.
	Render(scale float64) ([]byte, error)
}

// Document is a page-addressable view over a file's bytes. Callers own it and
// must Close it.
type Document interface {
	NumPages() int
	Page(n int) (Page, error)
	Close() error
}

// Opener parses raw bytes into a Document.
type Opener func(data []byte) (Document, error)

// OpenPDF opens data with rsc.io/pdf. A MuPDF handle is created on first use,
// for rasterizing pages or for text in fonts without glyph widths.
func OpenPDF(data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrDocumentOpen, r)
		}
	}()
	r, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentOpen, err)
	}
	return &pdfDocument{data: data, reader: r, pages: r.NumPage()}, nil
}

type pdfDocument struct {
	data   []byte
	reader *rpdf.Reader
	pages  int
	mupdf  *fitz.Document
}

func (d *pdfDocument) NumPages() int { return d.pages }

func (d *pdfDocument) Page(n int) (Page, error) {
	if n < 1 || n > d.pages {
		return nil, fmt.Errorf("page %d out of range 1..%d", n, d.pages)
	}
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", n)
	}
	return &pdfPage{doc: d, number: n, page: p}, nil
}

func (d *pdfDocument) Close() error {
	if d.mupdf == nil {
		return nil
	}
	err := d.mupdf.Close()
	d.mupdf = nil
	return err
}

func (d *pdfDocument) engine() (*fitz.Document, error) {
	if d.mupdf != nil {
		return d.mupdf, nil
	}
	m, err := fitz.NewFromMemory(d.data)
	if err != nil {
		return nil, fmt.Errorf("open mupdf: %w", err)
	}
	d.mupdf = m
	return m, nil
}

// hasWidths reports whether every run carries a glyph width. rsc.io/pdf
// reports W=0 and does not advance X for fonts without /Widths (the standard
// 14 fonts), so such runs cannot be split into words.
func hasWidths(runs []rpdf.Text) bool {
	for _, t := range runs {
		if t.W <= 0 {
			return false
		}
	}
	return true
}

// joinRuns glues the per-glyph runs reported by rsc.io/pdf back into words.
// A space is inserted on a line change or a horizontal gap wider than a fifth
// of the font size. Runs must carry widths.
func joinRuns(runs []rpdf.Text) string {
	var b strings.Builder
	for i, t := range runs {
		if i > 0 && breaksRun(runs[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
	}
	return b.String()
}

func breaksRun(prev, next rpdf.Text) bool {
	size := math.Max(prev.FontSize, 1)
	if math.Abs(next.Y-prev.Y) > size/2 {
		return true
	}
	gap := next.X - (prev.X + prev.W)
	return gap > size*0.2 || gap < -2*size
}

type pdfPage struct {
	doc    *pdfDocument
	number int
	page   rpdf.Page
}

func (p *pdfPage) Number() int { return p.number }

func (p *pdfPage) Text() (string, error) {
	runs := p.page.Content().Text
	if hasWidths(runs) {
		return joinRuns(runs), nil
	}
	m, err := p.doc.engine()
	if err != nil {
		return "", err
	}
	text, err := m.Text(p.number - 1)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", p.number, err)
	}
	return text, nil
}

func (p *pdfPage) Render(scale float64) ([]byte, error) {
	m, err := p.doc.engine()
	if err != nil {
		return nil, err
	}
	return renderPNG(m, p.number-1, scale)
}
