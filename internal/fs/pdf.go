package fs

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ReadPDFLines extracts the plain text of a PDF document and splits it like
// ReadLines.
func ReadPDFLines(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	text, ok := DecodeText(buf.Bytes())
	if !ok {
		return nil, ErrUndecodable
	}
	return SplitLines(text), nil
}
