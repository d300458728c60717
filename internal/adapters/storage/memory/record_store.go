package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

// RecordStore is a simple in-memory implementation of domain.RecordStore.
// It is NOT persistent and is only suitable for development / local mode.
type RecordStore struct {
	mu      sync.RWMutex
	records []domain.ResponseRecord
}

func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// SaveResponse appends the record. Identical saves produce independent
// records.
func (s *RecordStore) SaveResponse(ctx context.Context, rec *domain.ResponseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *rec)
	return nil
}

// FindLatestByKeyword scans from the newest record backwards for a
// case-insensitive content match.
func (s *RecordStore) FindLatestByKeyword(ctx context.Context, keyword string) (*domain.ResponseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(keyword)
	for i := len(s.records) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(s.records[i].Content), needle) {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

// Len reports the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
