package entity

type LLMMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type LLMChatCompletionRequest struct {
	Model       string       `json:"model"`
	Messages    []LLMMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type LLMChatCompletionChoice struct {
	Index   int        `json:"index"`
	Message LLMMessage `json:"message"`
}

type LLMChatCompletionResponse struct {
	ID      string                    `json:"id"`
	Choices []LLMChatCompletionChoice `json:"choices"`
}

type EmbeddingPart struct {
	Text string `json:"text"`
}

type EmbeddingContent struct {
	Parts []EmbeddingPart `json:"parts"`
}

type EmbedContentRequest struct {
	Model    string           `json:"model"`
	Content  EmbeddingContent `json:"content"`
	TaskType string           `json:"taskType,omitempty"`
}

type EmbedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}
