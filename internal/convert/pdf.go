package convert

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidatePDF confirms the buffer is a readable PDF and returns its page
// count. PDFs are published as media attachments rather than converted to
// HTML, so this is the whole of their conversion step.
func ValidatePDF(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return count, nil
}
