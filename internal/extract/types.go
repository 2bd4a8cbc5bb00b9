package extract

const (
	// KindPDF is the only media type the pipeline accepts.
	KindPDF = "application/pdf"

	// MaxFileSize is the upload ceiling (30 MiB).
	MaxFileSize = 30 * 1024 * 1024

	// MaxOCRPages caps OCR attempts per document, regardless of how many
	// pages lack native text.
	MaxOCRPages = 15

	// OCRScale is the render scale applied to a page before OCR.
	OCRScale = 1.5

	// MinPageChars is the shortest native page text treated as real content.
	// Anything shorter (page numbers, stray glyphs) is sent to OCR.
	MinPageChars = 20

	// MinDocumentChars is the shortest aggregated text accepted for a document.
	MinDocumentChars = 10

	pageErrorPlaceholder = "[Error extracting this page]"
)

// SourceFile is an uploaded file as handed to the pipeline. It is never mutated.
type SourceFile struct {
	Name string
	Size int64
	Kind string
	Data []byte
}

// PageOutcome is the tagged result of extracting a single page.
type PageOutcome struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	UsedOCR    bool   `json:"used_ocr"`
	Failed     bool   `json:"failed"`
}

// Result is the aggregated text of a document.
type Result struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
}
