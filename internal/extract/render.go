package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// pointsPerInch is the PDF user-space unit; scale 1.0 renders at 72 dpi.
const pointsPerInch = 72.0

// rasterizer draws a 0-based page into a freshly allocated RGBA surface at
// the given resolution. *fitz.Document satisfies it.
type rasterizer interface {
	ImageDPI(pageNumber int, dpi float64) (*image.RGBA, error)
}

func renderPNG(r rasterizer, index int, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid render scale %v", scale)
	}
	img, err := r.ImageDPI(index, pointsPerInch*scale)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index+1, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", index+1, err)
	}
	return buf.Bytes(), nil
}
