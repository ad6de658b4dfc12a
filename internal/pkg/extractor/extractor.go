package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize collapses every whitespace run, newlines included, into one space.
func Normalize(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

type parser interface {
	Parse(content []byte) (string, error)
}

// Extractor turns uploaded resumes into normalized plain text.
type Extractor struct {
	parsers map[string]parser
}

type Option func(*Extractor)

// WithDOCX registers the unioffice DOCX parser. unioffice refuses to read
// documents until a license is set, see SetLicense.
func WithDOCX() Option {
	return func(e *Extractor) {
		e.parsers[entity.MediaTypeDOCX] = docxParser{}
	}
}

// New returns an extractor for PDF resumes plus whatever the options enable.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		parsers: map[string]parser{
			entity.MediaTypePDF: pdfParser{},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) Extract(ctx context.Context, doc entity.Document) (string, error) {
	p, ok := e.parsers[doc.MediaType]
	if !ok {
		return "", fmt.Errorf("%w: %q", entity.ErrUnsupportedDocument, doc.MediaType)
	}

	raw, err := p.Parse(doc.Content)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to parse document",
			zap.String("filename", doc.Filename),
			zap.String("media_type", doc.MediaType),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %s: %v", entity.ErrDocumentParse, doc.Filename, err)
	}

	text := Normalize(raw)
	logger.FromContext(ctx).Debug("Document extracted",
		zap.String("filename", doc.Filename),
		zap.Int("size_bytes", len(doc.Content)),
		zap.Int("text_chars", len(text)),
	)

	return text, nil
}
