package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, doc entity.Document) (string, error) {
	return f.text, f.err
}

type storedText struct {
	text        string
	candidateID string
}

type fakeMemory struct {
	stored []storedText
	err    error
}

func (f *fakeMemory) Store(ctx context.Context, text, candidateID string) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, storedText{text: text, candidateID: candidateID})
	return nil
}

var pdfDoc = entity.Document{Filename: "jane_doe.pdf", MediaType: entity.MediaTypePDF, Content: []byte("%PDF")}

func TestIngest_DefaultsIDToFilename(t *testing.T) {
	mem := &fakeMemory{}
	uc := NewUsecase(&fakeExtractor{text: "Senior Go engineer"}, mem, zap.NewNop())

	id, err := uc.Ingest(context.Background(), pdfDoc, "  ")
	require.NoError(t, err)
	assert.Equal(t, "jane_doe.pdf", id)
	assert.Equal(t, []storedText{{text: "Senior Go engineer", candidateID: "jane_doe.pdf"}}, mem.stored)
}

func TestIngest_ExplicitCandidateID(t *testing.T) {
	mem := &fakeMemory{}
	uc := NewUsecase(&fakeExtractor{text: "Senior Go engineer"}, mem, zap.NewNop())

	id, err := uc.Ingest(context.Background(), pdfDoc, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", id)
	assert.Equal(t, "c1", mem.stored[0].candidateID)
}

func TestIngest_ParseErrorSkipsStorage(t *testing.T) {
	mem := &fakeMemory{}
	uc := NewUsecase(&fakeExtractor{err: entity.ErrDocumentParse}, mem, zap.NewNop())

	_, err := uc.Ingest(context.Background(), pdfDoc, "")
	assert.ErrorIs(t, err, entity.ErrDocumentParse)
	assert.Empty(t, mem.stored)
}

func TestIngest_StorageErrorPropagates(t *testing.T) {
	storeErr := errors.Join(entity.ErrStorage, errors.New("401"))
	uc := NewUsecase(&fakeExtractor{text: "Senior Go engineer"}, &fakeMemory{err: storeErr}, zap.NewNop())

	_, err := uc.Ingest(context.Background(), pdfDoc, "")
	assert.ErrorIs(t, err, entity.ErrStorage)
}

func TestAddText(t *testing.T) {
	mem := &fakeMemory{}
	uc := NewUsecase(&fakeExtractor{}, mem, zap.NewNop())

	require.NoError(t, uc.AddText(context.Background(), "Five years of Go", "c1"))
	assert.Equal(t, []storedText{{text: "Five years of Go", candidateID: "c1"}}, mem.stored)

	mem.err = entity.ErrTextTooShort
	assert.ErrorIs(t, uc.AddText(context.Background(), "short", "c1"), entity.ErrTextTooShort)
}
