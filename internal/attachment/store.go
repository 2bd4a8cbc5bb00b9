package attachment

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// handlePrefix marks handles minted by a Store. Only these are revocable.
const handlePrefix = "blob:"

// Store keeps the original bytes of live attachments for preview.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

type blob struct {
	kind string
	data []byte
}

func NewStore() *Store {
	return &Store{blobs: make(map[string]blob)}
}

// Put registers data and returns a new handle for it.
func (s *Store) Put(kind string, data []byte) string {
	h := handlePrefix + uuid.NewString()
	s.mu.Lock()
	s.blobs[h] = blob{kind: kind, data: data}
	s.mu.Unlock()
	return h
}

// Get returns the bytes and media type behind a live handle.
func (s *Store) Get(handle string) ([]byte, string, bool) {
	s.mu.RLock()
	b, ok := s.blobs[handle]
	s.mu.RUnlock()
	return b.data, b.kind, ok
}

// Revoke drops a handle. Handles not minted by a Store are ignored. It
// reports whether anything was released.
func (s *Store) Revoke(handle string) bool {
	if !strings.HasPrefix(handle, handlePrefix) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[handle]; !ok {
		return false
	}
	delete(s.blobs, handle)
	return true
}

// Len is the number of live handles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
