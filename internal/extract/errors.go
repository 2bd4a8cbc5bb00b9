package extract

import "errors"

var (
	ErrUnsupportedType   = errors.New("please upload a PDF file")
	ErrTooLarge          = errors.New("file too large")
	ErrDocumentOpen      = errors.New("could not open PDF document")
	ErrEmptyOrUnreadable = errors.New("this PDF appears to contain only images or unreadable content")
)
