package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// OCRLanguage is the single recognition profile used for every page.
const OCRLanguage = "eng"

// Recognizer runs OCR over an encoded page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// ocrClient is the part of *gosseract.Client that Tesseract drives.
type ocrClient interface {
	SetLanguage(langs ...string) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)
	Close() error
}

// Tesseract is a Recognizer backed by gosseract. Each call uses its own
// client so one value can serve concurrent pipelines.
type Tesseract struct {
	newClient func() ocrClient
}

func NewTesseract() *Tesseract {
	return &Tesseract{newClient: func() ocrClient { return gosseract.NewClient() }}
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	c := t.newClient()
	defer c.Close()
	if err := c.SetLanguage(OCRLanguage); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return normalizeText(text), nil
}
