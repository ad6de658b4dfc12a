package entity

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MemoryAddRequest struct {
	Text        string `json:"text"`
	CandidateID string `json:"candidateId"`
}

type MemoryAddResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MemoryQueryRequest struct {
	Question    string `json:"question"`
	CandidateID string `json:"candidateId,omitempty"`
}

type MemoryQueryResponse struct {
	ContextFound string `json:"contextFound"`
}
