package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var mockQuestions = []string{
	"Thanks for sharing. Can you walk me through the most complex system you have built and the trade-offs you made?",
	"Interesting. How did you make sure that service stayed reliable under load?",
	"Good. If you had to redesign it today, what would you change first and why?",
}

// MockConnector answers with canned interviewer questions.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Complete picks a question by prompt length, so a given prompt always gets the same reply.
func (m *MockConnector) Complete(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating reply via LLM")
	return mockQuestions[len(strings.TrimSpace(prompt))%len(mockQuestions)], nil
}
