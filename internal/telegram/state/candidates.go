package state

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

const defaultCandidateTTL = 24 * time.Hour

// CandidateStore remembers which candidate each chat is interviewing.
// Entries expire after the configured TTL of inactivity.
type CandidateStore struct {
	cache *cache.Cache
}

func NewCandidateStore(ttl time.Duration) *CandidateStore {
	if ttl <= 0 {
		ttl = defaultCandidateTTL
	}
	return &CandidateStore{
		cache: cache.New(ttl, ttl/2),
	}
}

// Set makes candidateID the active candidate of chatID.
func (s *CandidateStore) Set(chatID int64, candidateID string) {
	s.cache.SetDefault(chatKey(chatID), candidateID)
}

// Get returns the active candidate of chatID and refreshes its expiry.
func (s *CandidateStore) Get(chatID int64) (string, bool) {
	v, ok := s.cache.Get(chatKey(chatID))
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	s.cache.SetDefault(chatKey(chatID), id)
	return id, true
}

func (s *CandidateStore) Clear(chatID int64) {
	s.cache.Delete(chatKey(chatID))
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
