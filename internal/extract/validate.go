package extract

import (
	"fmt"
	"mime"
	"strings"
)

// Validate checks the declared kind and size of f. It never reads f.Data.
func Validate(f SourceFile) error {
	if !isPDFKind(f.Kind) {
		return fmt.Errorf("%w (got %q)", ErrUnsupportedType, f.Kind)
	}
	if f.Size > MaxFileSize {
		return fmt.Errorf("%w: file size (%s) exceeds the %s limit",
			ErrTooLarge, FormatFileSize(f.Size), FormatFileSize(MaxFileSize))
	}
	return nil
}

func isPDFKind(kind string) bool {
	mt, _, err := mime.ParseMediaType(kind)
	if err != nil {
		return false
	}
	return strings.EqualFold(mt, KindPDF)
}
