package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

// ResumeExtensions maps every resume extension the service knows to its media type.
// Whether DOCX is accepted depends on the validator options.
var ResumeExtensions = map[string]string{
	".pdf":  entity.MediaTypePDF,
	".docx": entity.MediaTypeDOCX,
}

// Validator validates resume uploads and JSON request bodies
type Validator struct {
	cfg       config.FileUploadConfig
	allowDOCX bool
}

type Option func(*Validator)

// WithDOCX accepts .docx resumes. Only set it when DOCX extraction is licensed.
func WithDOCX() Option {
	return func(v *Validator) {
		v.allowDOCX = true
	}
}

func NewValidator(cfg config.FileUploadConfig, opts ...Option) *Validator {
	v := &Validator{cfg: cfg}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateResume checks extension and size and returns the media type.
func (v *Validator) ValidateResume(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("%w: resume", entity.ErrMissingField)
	}
	return v.ValidateResumeFile(fh.Filename, fh.Size)
}

// ValidateResumeFile is ValidateResume for files that did not come from a form.
func (v *Validator) ValidateResumeFile(filename string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mediaType, ok := ResumeExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q (allowed: %s)", entity.ErrInvalidExtension, ext, v.allowedList())
	}
	if mediaType == entity.MediaTypeDOCX && !v.allowDOCX {
		return "", fmt.Errorf("%w: docx extraction is not enabled, upload a PDF", entity.ErrUnsupportedDocument)
	}

	if v.cfg.MaxFileSize > 0 && size > v.cfg.MaxFileSize {
		return "", fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, filename, size, v.cfg.MaxFileSize)
	}

	return mediaType, nil
}

func (v *Validator) allowedList() string {
	if v.allowDOCX {
		return "pdf, docx"
	}
	return "pdf"
}

func (v *Validator) ValidateChat(req *entity.ChatRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message", entity.ErrMissingField)
	}
	return nil
}

func (v *Validator) ValidateMemoryAdd(req *entity.MemoryAddRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text", entity.ErrMissingField)
	}
	return ValidateText(req.Text)
}

func (v *Validator) ValidateMemoryQuery(req *entity.MemoryQueryRequest) error {
	if strings.TrimSpace(req.Question) == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	return nil
}

// ValidateText enforces the minimum length of text accepted for storage.
func ValidateText(text string) error {
	if n := utf8.RuneCountInString(text); n < entity.MinTextLength {
		return fmt.Errorf("%w: got %d characters, need at least %d", entity.ErrTextTooShort, n, entity.MinTextLength)
	}
	return nil
}

// SanitizeFilename sanitizes a filename for use as a candidate identifier
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		"/", "",
		"\\", "",
		"\x00", "",
	)
	return strings.TrimSpace(replacer.Replace(filename))
}
