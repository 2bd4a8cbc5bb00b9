package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	langs    []string
	image    []byte
	text     string
	langErr  error
	imageErr error
	textErr  error
	closed   bool
}

func (c *fakeClient) SetLanguage(langs ...string) error {
	c.langs = langs
	return c.langErr
}

func (c *fakeClient) SetImageFromBytes(data []byte) error {
	c.image = data
	return c.imageErr
}

func (c *fakeClient) Text() (string, error) { return c.text, c.textErr }

func (c *fakeClient) Close() error {
	c.closed = true
	return nil
}

func newFakeTesseract(c *fakeClient) *Tesseract {
	return &Tesseract{newClient: func() ocrClient { return c }}
}

func TestTesseractRecognize(t *testing.T) {
	c := &fakeClient{text: "  Scanned\n\ninvoice\t total:  42 \n"}

	text, err := newFakeTesseract(c).Recognize(context.Background(), []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "Scanned invoice total: 42", text)
	assert.Equal(t, []string{OCRLanguage}, c.langs)
	assert.Equal(t, []byte("png"), c.image)
	assert.True(t, c.closed)
}

func TestTesseractRecognizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		want   string
	}{
		{name: "language", client: &fakeClient{langErr: errBoom}, want: "set language"},
		{name: "image", client: &fakeClient{imageErr: errBoom}, want: "set image"},
		{name: "text", client: &fakeClient{textErr: errBoom}, want: "recognize text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFakeTesseract(tt.client).Recognize(context.Background(), []byte("png"))

			assert.ErrorIs(t, err, errBoom)
			assert.ErrorContains(t, err, tt.want)
			assert.True(t, tt.client.closed)
		})
	}
}
