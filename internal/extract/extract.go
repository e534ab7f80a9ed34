package extract

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFText pulls the plain text of an in-memory PDF. Used by the transcript
// analysis mode, where the model receives text instead of the raw document.
func PDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
