package entity

import "strings"

// MinTextLength is the shortest text accepted for storage, in characters.
const MinTextLength = 10

// ContextSeparator joins retrieved fragments into one context string.
const ContextSeparator = "\n\n"

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Document is an uploaded file, alive for one ingestion only.
type Document struct {
	Filename  string
	MediaType string
	Content   []byte
}

// Fragment is one stored piece of resume text with its embedding.
type Fragment struct {
	ID          string
	CandidateID string
	Text        string
	Vector      []float32
}

// ScoredFragment is a search hit, higher score means more similar.
type ScoredFragment struct {
	ID          string
	CandidateID string
	Text        string
	Score       float64
}

// SearchRequest is a nearest-neighbour lookup against a fragment index.
// An empty CandidateID searches across all candidates.
type SearchRequest struct {
	Vector      []float32
	TopK        int
	CandidateID string
}

type RetrievalStatus string

const (
	RetrievalFound    RetrievalStatus = "found"
	RetrievalEmpty    RetrievalStatus = "empty"
	RetrievalDegraded RetrievalStatus = "degraded"
)

// Retrieval is the outcome of a similarity query. A failed query is not an
// error for the caller: it is reported as RetrievalDegraded with the cause.
type Retrieval struct {
	Status    RetrievalStatus
	Fragments []ScoredFragment
	Cause     error
}

func NewRetrieval(fragments []ScoredFragment) Retrieval {
	if len(fragments) == 0 {
		return Retrieval{Status: RetrievalEmpty}
	}
	return Retrieval{Status: RetrievalFound, Fragments: fragments}
}

func DegradedRetrieval(cause error) Retrieval {
	return Retrieval{Status: RetrievalDegraded, Cause: cause}
}

// Found reports whether at least one fragment came back.
func (r Retrieval) Found() bool {
	return r.Status == RetrievalFound && len(r.Fragments) > 0
}

// Context joins fragment texts in rank order.
func (r Retrieval) Context() string {
	texts := make([]string, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		if f.Text != "" {
			texts = append(texts, f.Text)
		}
	}
	return strings.Join(texts, ContextSeparator)
}
