package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrValidation is the root of every client input error (HTTP 400).
	ErrValidation = errors.New("validation error")

	ErrMissingField        = fmt.Errorf("%w: required field is missing", ErrValidation)
	ErrTextTooShort        = fmt.Errorf("%w: text is too short or empty", ErrValidation)
	ErrInvalidExtension    = fmt.Errorf("%w: invalid file extension", ErrValidation)
	ErrFileTooLarge        = fmt.Errorf("%w: file too large", ErrValidation)
	ErrUnsupportedDocument = fmt.Errorf("%w: unsupported document type", ErrValidation)

	// Processing errors
	ErrDocumentParse = errors.New("failed to parse document")
	ErrStorage       = errors.New("vector store failure")
	ErrGeneration    = errors.New("AI generation failed")
)
