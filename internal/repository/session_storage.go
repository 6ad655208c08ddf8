package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"retail-mis-console/internal/model"
)

var (
	ErrEmptyScope      = errors.New("session scope is required")
	ErrMalformedRecord = errors.New("malformed session record")
)

// MalformedRecordError is returned by Load for a record that cannot be decoded.
// Token is the stored token, empty when it was missing.
type MalformedRecordError struct {
	Scope  string
	Token  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: scope %s: %s", ErrMalformedRecord, e.Scope, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// SessionStorage persists one SessionRecord per storage scope.
// Save and Delete replace or remove all fields of a scope at once.
type SessionStorage interface {
	// Load returns nil, nil when the scope holds no record
	Load(ctx context.Context, scope string) (*model.SessionRecord, error)
	Save(ctx context.Context, record *model.SessionRecord) error
	// Delete is a no-op for scopes without a record
	Delete(ctx context.Context, scope string) error
	// DeleteIf removes the record only while it still holds token.
	// It reports whether a record was removed.
	DeleteIf(ctx context.Context, scope, token string) (bool, error)
}

type memorySessionStorage struct {
	mu      sync.RWMutex
	records map[string]model.SessionRecord
}

// NewMemorySessionStorage keeps records in process memory. Records do not survive a restart.
func NewMemorySessionStorage() SessionStorage {
	return &memorySessionStorage{records: make(map[string]model.SessionRecord)}
}

func (s *memorySessionStorage) Load(_ context.Context, scope string) (*model.SessionRecord, error) {
	if scope == "" {
		return nil, ErrEmptyScope
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[scope]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *memorySessionStorage) Save(_ context.Context, record *model.SessionRecord) error {
	if record == nil || record.Scope == "" {
		return ErrEmptyScope
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Scope] = *record
	return nil
}

func (s *memorySessionStorage) Delete(_ context.Context, scope string) error {
	if scope == "" {
		return ErrEmptyScope
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, scope)
	return nil
}

func (s *memorySessionStorage) DeleteIf(_ context.Context, scope, token string) (bool, error) {
	if scope == "" {
		return false, ErrEmptyScope
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[scope]
	if !ok || rec.Token != token {
		return false, nil
	}
	delete(s.records, scope)
	return true, nil
}
