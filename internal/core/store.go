package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default session limits for the upload store.
const (
	DefaultUploadTTL  = time.Hour
	DefaultMaxUploads = 64
)

// Upload is the raw bytes of one uploaded workbook.
// It is the only state kept between interactions; reports are recomputed from it.
type Upload struct {
	ID        string
	FileName  string
	Size      int64
	Sheets    []string
	CreatedAt time.Time
	data      []byte
}

// Data returns the uploaded bytes. Callers must not modify the slice.
func (u *Upload) Data() []byte {
	return u.data
}

// UploadStore holds uploads in memory, keyed by upload id.
type UploadStore struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	uploads map[string]*Upload
	order   []string // insertion order, oldest first
}

// NewUploadStore creates a store whose entries expire after ttl; at most
// maxEntries are kept, oldest evicted first.
func NewUploadStore(ttl time.Duration, maxEntries int) *UploadStore {
	if ttl <= 0 {
		ttl = DefaultUploadTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxUploads
	}
	return &UploadStore{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		uploads:    make(map[string]*Upload),
	}
}

// Put stores data and returns the new upload.
func (s *UploadStore) Put(fileName string, data []byte, sheets []string) *Upload {
	u := &Upload{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Size:      int64(len(data)),
		Sheets:    sheets,
		CreatedAt: s.now(),
		data:      data,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpiredLocked()
	for len(s.order) >= s.maxEntries {
		s.removeLocked(s.order[0])
	}
	s.uploads[u.ID] = u
	s.order = append(s.order, u.ID)
	return u
}

// Get returns the upload with id, or ErrUploadNotFound if it is unknown or expired.
func (s *UploadStore) Get(id string) (*Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.uploads[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUploadNotFound, id)
	}
	if s.now().Sub(u.CreatedAt) > s.ttl {
		s.removeLocked(id)
		return nil, fmt.Errorf("%w: %s (expired)", ErrUploadNotFound, id)
	}
	return u, nil
}

// Delete removes an upload. Unknown ids are ignored.
func (s *UploadStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// Len returns the number of live uploads.
func (s *UploadStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	return len(s.uploads)
}

func (s *UploadStore) evictExpiredLocked() {
	now := s.now()
	for len(s.order) > 0 {
		oldest := s.uploads[s.order[0]]
		if oldest != nil && now.Sub(oldest.CreatedAt) <= s.ttl {
			return
		}
		s.removeLocked(s.order[0])
	}
}

func (s *UploadStore) removeLocked(id string) {
	delete(s.uploads, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
