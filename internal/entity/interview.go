package entity

// FallbackReply is sent to the candidate when the language model is unavailable.
const FallbackReply = "Sorry, I am having trouble thinking right now"

// Reply is the outcome of a generation call. Fallback is set when the
// provider failed and Text holds FallbackReply instead of model output.
type Reply struct {
	Text     string
	Fallback bool
	Cause    error
}

type ChatRequest struct {
	Message     string `json:"message"`
	CandidateID string `json:"candidateId,omitempty"`
}

type ChatResult struct {
	Reply       string `json:"reply"`
	ContextUsed bool   `json:"contextUsed"`
}
