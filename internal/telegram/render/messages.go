package render

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

const (
	MsgWelcome = `👋 Hi! I am the HireFlow interviewer.

Send me a candidate resume as a PDF or DOCX file and I will ask interview questions grounded in it.
Add a caption to the file to use it as the candidate id.`

	MsgHelp = `🤖 Commands:

/start - Show the welcome message
/help - Show this help
/cancel - Forget the active candidate

How it works:
1. Send a resume (PDF or DOCX, caption = candidate id)
2. Write as the candidate, I reply with the next interview question
3. Send another resume to switch candidates`

	MsgCandidateCleared = "🧹 Active candidate cleared. Send a new resume to start again."
	MsgNoCandidate      = "ℹ️ No active candidate. Send a resume first, or just chat without resume context."
	MsgResumeStored     = "✅ Resume stored. Active candidate: %s\n\nIntroduce yourself to start the interview."

	ErrGeneric            = "❌ Something went wrong. Please try again or send /start"
	ErrUnknownCommand     = "❌ Unknown command. Use /help"
	ErrUnsupportedMessage = "📎 I understand text messages and PDF or DOCX resumes only."
	ErrTimeout            = "⏱ The request took too long. Please try again."
	ErrNetworkIssue       = "🌐 Network problem, please try again in a moment."
	ErrUnsupportedFile    = "📄 Unsupported file type, send a PDF or DOCX resume."
	ErrFileTooLarge       = "📦 The file is too large."
	ErrTextTooShort       = "📄 The resume contains too little text to store."
	ErrParse              = "📄 I could not read this resume. Is the file damaged?"
	ErrStorage            = "🗄 I could not save the resume right now. Please try again later."

	ErrRateLimitSoft   = "⚠️ Too many requests. Please wait a little."
	ErrRateLimitHard   = "⚠️ Rate limit exceeded. Wait about 30 seconds before trying again."
	ErrRateLimitStrict = "🛑 You are sending requests too often. Please wait a minute."
)

func ResumeStored(candidateID string) string {
	return fmt.Sprintf(MsgResumeStored, candidateID)
}

// ClassifyError maps an ingestion error to a user-facing message.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	case errors.Is(err, entity.ErrInvalidExtension), errors.Is(err, entity.ErrUnsupportedDocument):
		return ErrUnsupportedFile
	case errors.Is(err, entity.ErrFileTooLarge):
		return ErrFileTooLarge
	case errors.Is(err, entity.ErrTextTooShort):
		return ErrTextTooShort
	case errors.Is(err, entity.ErrDocumentParse):
		return ErrParse
	case errors.Is(err, entity.ErrStorage):
		return ErrStorage
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	return ErrGeneric
}

// RateLimitWarning escalates with the number of warnings already sent.
func RateLimitWarning(count int) string {
	switch {
	case count <= 1:
		return ErrRateLimitSoft
	case count == 2:
		return ErrRateLimitHard
	default:
		return ErrRateLimitStrict
	}
}
