package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sriaruvi/storefront/internal/storage"
)

// fileEntry stores an uploaded object in memory.
type fileEntry struct {
	Key         string
	ContentType string
	Data        []byte
	URL         string
}

// Storage implements storage.Storage using an in-memory map. Used in tests.
type Storage struct {
	mu      sync.RWMutex
	files   map[string]*fileEntry
	baseURL string

	// FailKeys lists keys whose upload should fail, for exercising the
	// skip-and-continue policy in tests.
	FailKeys map[string]bool
}

// New creates a new in-memory storage instance.
func New(baseURL string) *Storage {
	return &Storage{
		files:    make(map[string]*fileEntry),
		baseURL:  baseURL,
		FailKeys: make(map[string]bool),
	}
}

// Upload stores the object bytes in memory and returns the generated URL.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	data, err := io.ReadAll(input.Data)
	if err != nil {
		return nil, fmt.Errorf("read upload data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailKeys[input.Key] {
		return nil, fmt.Errorf("simulated upload failure: %s", input.Key)
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, input.Key)
	s.files[input.Key] = &fileEntry{
		Key:         input.Key,
		ContentType: input.ContentType,
		Data:        data,
		URL:         url,
	}

	return &storage.UploadResult{Key: input.Key, URL: url}, nil
}

// Delete removes an object from memory.
func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[key]; !exists {
		return fmt.Errorf("file not found: %s", key)
	}

	delete(s.files, key)
	return nil
}

// GetURL returns the URL for the given key.
func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.files[key]
	if !exists {
		return "", fmt.Errorf("file not found: %s", key)
	}

	return entry.URL, nil
}

// Count returns the number of stored objects.
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
