package resume

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/request"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/response"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	formFieldResume      = "resume"
	formFieldCandidateID = "candidateId"
)

type Handler struct {
	usecase   ResumeUsecase
	retriever Retriever
	cfg       config.FileUploadConfig
	validator *validator.Validator
}

func NewHandler(
	usecase ResumeUsecase,
	retriever Retriever,
	cfg config.FileUploadConfig,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		retriever: retriever,
		cfg:       cfg,
		validator: validator,
	}
}

// Upload handles POST /api/upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadResume")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		ctxzap.Warn(ctx, "failed to parse multipart form", zap.Error(err))
		response.BadRequest(w, "invalid form data or size too large")
		return
	}

	file, header, err := r.FormFile(formFieldResume)
	if err != nil {
		ctxzap.Warn(ctx, "no resume file in request", zap.Error(err))
		response.BadRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	mediaType, err := h.validator.ValidateResume(header)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read uploaded file", zap.Error(err))
		response.InternalError(w, "Failed to read uploaded file")
		return
	}

	doc := entity.Document{
		Filename:  validator.SanitizeFilename(header.Filename),
		MediaType: mediaType,
		Content:   content,
	}

	ctxzap.Info(ctx, "ingesting resume",
		zap.String("filename", doc.Filename),
		zap.Int64("size", header.Size),
	)

	id, err := h.usecase.Ingest(ctx, doc, r.FormValue(formFieldCandidateID))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.UploadResponse{
		Success: true,
		Message: "Resume processed and stored successfully",
		ID:      id,
	})
}

// MemoryAdd handles POST /api/test-memory-add
func (h *Handler) MemoryAdd(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "MemoryAdd")

	var req entity.MemoryAddRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		ctxzap.Warn(ctx, "invalid request body", zap.Error(err))
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.ValidateMemoryAdd(&req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if err := h.usecase.AddText(ctx, req.Text, req.CandidateID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.MemoryAddResponse{
		Success: true,
		Message: "Text added to memory",
	})
}

// MemoryQuery handles POST /api/test-memory-query
func (h *Handler) MemoryQuery(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "MemoryQuery")

	var req entity.MemoryQueryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		ctxzap.Warn(ctx, "invalid request body", zap.Error(err))
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.ValidateMemoryQuery(&req); err != nil {
		response.BadRequest(w, "question is required")
		return
	}

	retrieval := h.retriever.Retrieve(ctx, req.Question, req.CandidateID)

	response.Success(w, entity.MemoryQueryResponse{
		ContextFound: retrieval.Context(),
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrMissingField):
		ctxzap.Warn(ctx, "missing field", zap.Error(err))
		response.BadRequest(w, "text is required")
	case errors.Is(err, entity.ErrTextTooShort):
		ctxzap.Warn(ctx, "text too short", zap.Error(err))
		response.BadRequest(w, "text is too short or empty (minimum 10 characters)")
	case errors.Is(err, entity.ErrInvalidExtension), errors.Is(err, entity.ErrUnsupportedDocument):
		ctxzap.Warn(ctx, "unsupported resume type", zap.Error(err))
		response.BadRequest(w, "unsupported file type, upload a PDF or DOCX resume")
	case errors.Is(err, entity.ErrFileTooLarge):
		ctxzap.Warn(ctx, "resume too large", zap.Error(err))
		response.BadRequest(w, "file too large")
	case errors.Is(err, entity.ErrValidation):
		ctxzap.Warn(ctx, "validation failed", zap.Error(err))
		response.BadRequest(w, "validation failed")
	case errors.Is(err, entity.ErrDocumentParse):
		ctxzap.Error(ctx, "failed to parse resume", zap.Error(err))
		response.InternalError(w, "Failed to parse resume")
	case errors.Is(err, entity.ErrStorage):
		ctxzap.Error(ctx, "failed to store resume", zap.Error(err))
		response.InternalError(w, "Failed to store resume in memory")
	default:
		ctxzap.Error(ctx, "failed to process resume", zap.Error(err))
		response.InternalError(w, "Failed to process resume")
	}
}
