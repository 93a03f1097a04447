package storage

import (
	"context"
	"fmt"
	"sync"
)

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage keeps records for the lifetime of the process. There is no
// eviction and no delete.
type MemoryStorage struct {
	mu        sync.RWMutex
	records   map[ID]*Record
	allocator *IDAllocator
}

func NewMemoryStorage(allocator *IDAllocator) *MemoryStorage {
	if allocator == nil {
		allocator = NewIDAllocator(nil, DefaultMaxAttempts)
	}
	return &MemoryStorage{records: make(map[ID]*Record), allocator: allocator}
}

func (s *MemoryStorage) Store(_ context.Context, record *Record) (*InsertResult, error) {
	if record == nil {
		return nil, ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.allocator.Allocate(func(id ID) bool {
		_, ok := s.records[id]
		return ok
	})
	if err != nil {
		return nil, fmt.Errorf("memory: allocating id: %w", err)
	}
	record.ID = id
	s.records[id] = record.clone()
	return newInsertResult(id, record.ExpiresAt), nil
}

func (s *MemoryStorage) Insert(_ context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ID]; ok {
		return fmt.Errorf("memory: %w: %s", ErrDuplicateID, record.ID)
	}
	s.records[record.ID] = record.clone()
	return nil
}

func (s *MemoryStorage) Get(_ context.Context, id ID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return record.clone(), nil
}

func (s *MemoryStorage) Contains(_ context.Context, id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[id]
	return ok
}

func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
