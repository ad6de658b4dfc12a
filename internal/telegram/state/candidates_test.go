package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCandidateStore(t *testing.T) {
	s := NewCandidateStore(time.Hour)

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Set(1, "jane.pdf")
	s.Set(2, "john.docx")

	id, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "jane.pdf", id)

	s.Set(1, "jane-v2")
	id, _ = s.Get(1)
	assert.Equal(t, "jane-v2", id)

	s.Clear(1)
	_, ok = s.Get(1)
	assert.False(t, ok)

	id, ok = s.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "john.docx", id)
}

func TestCandidateStoreExpires(t *testing.T) {
	s := NewCandidateStore(20 * time.Millisecond)
	s.Set(7, "jane.pdf")

	time.Sleep(50 * time.Millisecond)

	_, ok := s.Get(7)
	assert.False(t, ok)
}

func TestCandidateStoreDefaultTTL(t *testing.T) {
	s := NewCandidateStore(0)
	s.Set(3, "x")

	id, ok := s.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "x", id)
}
