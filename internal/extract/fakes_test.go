package extract

import (
	"context"
	"errors"
	"fmt"
)

type fakePage struct {
	number    int
	text      string
	textErr   error
	panicMsg  string
	renderErr error
	renders   int
}

func (p *fakePage) Number() int { return p.number }

func (p *fakePage) Text() (string, error) {
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	return p.text, p.textErr
}

func (p *fakePage) Render(scale float64) ([]byte, error) {
	p.renders++
	if p.renderErr != nil {
		return nil, p.renderErr
	}
	return []byte(fmt.Sprintf("png:%d@%.1f", p.number, scale)), nil
}

type fakeDoc struct {
	pages   []*fakePage
	pageErr map[int]error
	closed  int
}

func newFakeDoc(texts ...string) *fakeDoc {
	d := &fakeDoc{}
	for i, t := range texts {
		d.pages = append(d.pages, &fakePage{number: i + 1, text: t})
	}
	return d
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) Page(n int) (Page, error) {
	if err := d.pageErr[n]; err != nil {
		return nil, err
	}
	return d.pages[n-1], nil
}

func (d *fakeDoc) Close() error {
	d.closed++
	return nil
}

func (d *fakeDoc) opener() Opener {
	return func([]byte) (Document, error) { return d, nil }
}

func (d *fakeDoc) renders() int {
	total := 0
	for _, p := range d.pages {
		total += p.renders
	}
	return total
}

// fakeOCR returns text for every image, or err when set. byImage overrides
// the text for specific images.
type fakeOCR struct {
	text    string
	err     error
	byImage map[string]string
	calls   int
}

func (f *fakeOCR) Recognize(_ context.Context, image []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if t, ok := f.byImage[string(image)]; ok {
		return t, nil
	}
	return f.text, nil
}

var errBoom = errors.New("boom")
