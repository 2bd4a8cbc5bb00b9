package extract

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRasterizer struct {
	gotIndex int
	gotDPI   float64
	err      error
}

// ImageDPI returns a surface sized like a US Letter page at dpi.
func (f *fakeRasterizer) ImageDPI(index int, dpi float64) (*image.RGBA, error) {
	f.gotIndex, f.gotDPI = index, dpi
	if f.err != nil {
		return nil, f.err
	}
	w, h := int(8.5*dpi), int(11*dpi)
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

func TestRenderPNGScalesViewport(t *testing.T) {
	r := &fakeRasterizer{}

	out, err := renderPNG(r, 2, OCRScale)
	require.NoError(t, err)

	assert.Equal(t, 2, r.gotIndex)
	assert.InDelta(t, 108.0, r.gotDPI, 1e-9)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 918, 1188), img.Bounds())
}

func TestRenderPNGErrors(t *testing.T) {
	_, err := renderPNG(&fakeRasterizer{err: errBoom}, 0, OCRScale)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "render page 1")

	_, err = renderPNG(&fakeRasterizer{}, 0, 0)
	assert.Error(t, err)
}
