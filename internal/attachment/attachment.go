// Package attachment turns uploaded PDFs into Attachments: validated,
// extracted, and backed by a preview handle the caller must release.
package attachment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KindPDF is the only attachment kind produced.
const KindPDF = "pdf"

// Attachment is owned by the caller once returned. Its Handle stays valid
// until Processor.Release is called.
type Attachment struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Kind          string `json:"type"`
	Size          int64  `json:"size"`
	Handle        string `json:"url"`
	ExtractedText string `json:"extractedText"`
	PageCount     int    `json:"pageCount"`
}

// NewID returns a millisecond timestamp followed by a 7-character random
// suffix, e.g. "1718031234567-3f9a1c2".
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
