// Package parser turns an uploaded resume document into a structured resume.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/resume"
)

// MinTextLength is the least amount of extracted text, in runes, that is
// worth sending to the model. Less usually means a scanned document.
const MinTextLength = 50

// Result separates usable data with a warning from a hard failure.
type Result struct {
	Success bool           `json:"success"`
	Data    *resume.Resume `json:"data,omitempty"`
	Warning string         `json:"warning,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// TextExtractor is implemented by extract.Extractor.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, fileName string) (string, error)
}

type Parser struct {
	gen       ai.Generator
	extractor TextExtractor
	logger    *zap.Logger
}

// New returns a Parser. With a nil generator every supported file yields the
// empty skeleton and a warning.
func New(gen ai.Generator, extractor TextExtractor, log *zap.Logger) *Parser {
	return &Parser{
		gen:       gen,
		extractor: extractor,
		logger:    logger.ForComponent(log, "parser"),
	}
}

const structureSystem = `You are a resume parser. Extract the resume text into a JSON object with exactly these top-level keys:
"personalInfo": {"firstName", "lastName", "email", "phone", "headline", "summary"},
"experience": [{"id", "title", "company", "startDate", "endDate", "description"}],
"education": [{"id", "degree", "institution", "startDate", "endDate", "description"}],
"skills": [{"id", "name", "proficiency", "category"}],
"projects": [{"id", "title", "description", "technologies", "link"}].
Every list item must carry a unique string "id". Use "Present" as endDate for current positions and a proficiency from 1 to 5. Use empty strings and empty arrays for anything the text does not mention.`

// Parse never returns an error. Unsupported input and unusable model output
// produce Success=false; every other failure keeps Success=true with the
// empty skeleton and a Warning.
func (p *Parser) Parse(ctx context.Context, data []byte, fileName string) Result {
	ext := strings.ToLower(filepath.Ext(fileName))

	switch ext {
	case ".txt", ".pdf":
	case ".docx":
		return p.warn(fileName, "DOCX files are not supported yet. Upload a PDF or TXT version, or fill in the resume manually.", nil)
	default:
		p.logger.Info("rejected resume upload", zap.String("file", fileName), zap.String("extension", ext))
		return Result{Error: fmt.Sprintf("unsupported file format %q: upload a PDF, DOCX or TXT file", ext)}
	}

	text, err := p.extractor.Extract(ctx, data, fileName)
	if err != nil {
		return p.warn(fileName, "Could not read text from the file. Fill in the resume manually or try another file.", err)
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return p.warn(fileName, "Very little text could be extracted. The file may be a scanned image that needs OCR; upload a text-based PDF or TXT file instead.", nil)
	}

	if p.gen == nil {
		return p.warn(fileName, causeWarning(ai.CauseNotConfigured), ai.ErrNotConfigured)
	}

	reply, err := p.gen.Generate(ctx, ai.Request{
		System: structureSystem,
		Prompt: "Resume text:\n" + text,
		Format: ai.FormatJSON,
	})
	if err != nil {
		return p.warn(fileName, causeWarning(ai.Classify(err)), err)
	}

	raw, err := ai.DecodeJSON[map[string]any](reply)
	if err != nil {
		p.logger.Warn("resume structuring returned unusable json",
			zap.String("file", fileName),
			logger.Cause(string(ai.Classify(err))),
			zap.Error(err),
		)
		return Result{Error: "the model returned a resume that could not be parsed, please try again"}
	}

	parsed := resume.Decode(raw)
	resume.EnsureIDs(&parsed)

	p.logger.Info("resume parsed",
		zap.String("file", fileName),
		zap.Int("experience", len(parsed.Experience)),
		zap.Int("education", len(parsed.Education)),
		zap.Int("skills", len(parsed.Skills)),
		zap.Int("projects", len(parsed.Projects)),
	)

	return Result{Success: true, Data: &parsed}
}

func (p *Parser) warn(fileName, warning string, err error) Result {
	fields := []zap.Field{zap.String("file", fileName), zap.String("warning", warning)}
	if err != nil {
		fields = append(fields, logger.Cause(string(ai.Classify(err))), zap.Error(err))
	}
	p.logger.Warn("resume parsing degraded to empty skeleton", fields...)

	skeleton := resume.Empty()
	return Result{Success: true, Data: &skeleton, Warning: warning}
}

func causeWarning(cause ai.Cause) string {
	switch cause {
	case ai.CauseNotConfigured:
		return "Automatic parsing is unavailable because no AI provider is configured. Fill in the resume manually."
	case ai.CauseQuota:
		return "The AI service quota has been exceeded, so the resume could not be parsed automatically. Try again later or fill it in manually."
	case ai.CauseMalformed:
		return "The AI service returned a response in an unexpected format. Try again or fill in the resume manually."
	default:
		return "The AI service is temporarily unavailable. Try again in a moment or fill in the resume manually."
	}
}
