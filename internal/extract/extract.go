// Package extract turns uploaded resume documents into plain text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
)

const DefaultTimeout = 30 * time.Second

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor reads text out of plain-text and PDF documents.
type Extractor struct {
	timeout time.Duration
	logger  *zap.Logger

	pdfText func(data []byte) (string, error)
}

func New(timeout time.Duration, log *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		timeout: timeout,
		logger:  logger.ForComponent(log, "extract"),
		pdfText: pdfText,
	}
}

// Extract returns the text of data. The format is picked by the extension of
// fileName. PDF extraction is abandoned when the timeout fires.
func (e *Extractor) Extract(ctx context.Context, data []byte, fileName string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("read %s: text is not valid utf-8", fileName)
		}
		return normalize(string(data)), nil
	case ".pdf":
		return e.extractPDF(ctx, data, fileName)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

type extraction struct {
	text string
	err  error
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte, fileName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	done := make(chan extraction, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extraction{err: fmt.Errorf("pdf reader panicked: %v", r)}
			}
		}()
		text, err := e.pdfText(data)
		done <- extraction{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("extract %s: %w", fileName, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("extract %s: %w", fileName, res.err)
		}
		text := normalize(res.text)
		e.logger.Debug("pdf text extracted",
			zap.String("file", fileName),
			zap.Int("bytes", len(data)),
			zap.Int("chars", utf8.RuneCountInString(text)),
			zap.Duration("took", time.Since(started)),
		)
		return text, nil
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}

	return buf.String(), nil
}

// normalize collapses runs of spaces inside lines and drops blank lines.
func normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
