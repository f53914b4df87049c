// Package pdftext reads the text layer of uploaded PDF documents.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	ErrInvalidPDF = errors.New("invalid pdf")
	ErrNoText     = errors.New("pdf has no text layer")
)

// Extractor returns the plain text of a PDF, pages separated by newlines.
type Extractor interface {
	Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

type ledongthucExtractor struct{}

// NewExtractor returns an Extractor backed by github.com/ledongthuc/pdf.
func NewExtractor() Extractor {
	return &ledongthucExtractor{}
}

func (e *ledongthucExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrInvalidPDF, p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pageText)
	}

	text = sanitizeUTF8(b.String())
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// ExtractFile opens path and extracts its text with e.
func ExtractFile(ctx context.Context, e Extractor, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat pdf: %w", err)
	}
	return e.Extract(ctx, f, info.Size())
}

// sanitizeUTF8 replaces invalid sequences with U+FFFD so downstream regexps
// see well-formed text.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
