package interview

import (
	"net/http"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/request"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/response"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   InterviewUsecase
	validator *validator.Validator
}

func NewHandler(usecase InterviewUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /api/chat. Generation failures are answered with the
// fallback reply and status 200.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		ctxzap.Warn(ctx, "invalid request body", zap.Error(err))
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.ValidateChat(&req); err != nil {
		ctxzap.Warn(ctx, "chat message missing", zap.Error(err))
		response.BadRequest(w, "message is required")
		return
	}

	response.Success(w, h.usecase.Chat(ctx, &req))
}
