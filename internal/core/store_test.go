package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for the upload store.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, maxEntries int) (*UploadStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewUploadStore(ttl, maxEntries)
	s.now = clock.now
	return s, clock
}

func TestUploadStore_PutGet(t *testing.T) {
	s, _ := newTestStore(time.Hour, 4)

	u := s.Put("stock.xlsx", []byte("data"), []string{"Sheet1"})
	if u.ID == "" {
		t.Fatal("Put() returned empty id")
	}
	if u.Size != 4 {
		t.Errorf("Size = %d, want 4", u.Size)
	}

	got, err := s.Get(u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got.Data()) != "data" || got.FileName != "stock.xlsx" {
		t.Errorf("Get() = %+v", got)
	}

	other := s.Put("stock.xlsx", []byte("data"), nil)
	if other.ID == u.ID {
		t.Error("two uploads share an id")
	}
}

func TestUploadStore_UnknownID(t *testing.T) {
	s, _ := newTestStore(time.Hour, 4)
	_, err := s.Get("missing")
	if !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("Get() error = %v, want ErrUploadNotFound", err)
	}
}

func TestUploadStore_Expiry(t *testing.T) {
	s, clock := newTestStore(time.Hour, 4)
	u := s.Put("stock.xlsx", []byte("x"), nil)

	clock.advance(59 * time.Minute)
	if _, err := s.Get(u.ID); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	clock.advance(2 * time.Minute)
	_, err := s.Get(u.ID)
	if !errors.Is(err, ErrUploadNotFound) || !strings.Contains(err.Error(), "expired") {
		t.Errorf("Get() after expiry error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after expiry, want 0", s.Len())
	}
}

func TestUploadStore_EvictsOldest(t *testing.T) {
	s, clock := newTestStore(time.Hour, 2)

	first := s.Put("a.xlsx", []byte("a"), nil)
	clock.advance(time.Second)
	second := s.Put("b.xlsx", []byte("b"), nil)
	clock.advance(time.Second)
	third := s.Put("c.xlsx", []byte("c"), nil)

	if _, err := s.Get(first.ID); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("oldest upload still present: %v", err)
	}
	for _, id := range []string{second.ID, third.ID} {
		if _, err := s.Get(id); err != nil {
			t.Errorf("Get(%s) error = %v", id, err)
		}
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestUploadStore_PutSweepsExpired(t *testing.T) {
	s, clock := newTestStore(time.Minute, 10)
	s.Put("a.xlsx", []byte("a"), nil)
	s.Put("b.xlsx", []byte("b"), nil)

	clock.advance(2 * time.Minute)
	fresh := s.Put("c.xlsx", []byte("c"), nil)

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if _, err := s.Get(fresh.ID); err != nil {
		t.Errorf("Get(fresh) error = %v", err)
	}
}

func TestUploadStore_Delete(t *testing.T) {
	s, _ := newTestStore(time.Hour, 4)
	u := s.Put("a.xlsx", []byte("a"), nil)

	s.Delete(u.ID)
	s.Delete("never-existed")

	if _, err := s.Get(u.ID); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("Get() after Delete error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}
