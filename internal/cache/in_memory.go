package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is a single process Store. It provides no coordination across processes.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryStore(opts ...func(*MemoryStore)) *MemoryStore {
	s := &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func WithNow(now func() time.Time) func(*MemoryStore) {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// load returns the live entry for key. Caller must hold mu.
func (s *MemoryStore) load(key string) (memoryEntry, bool) {
	entry, found := s.data[key]
	if !found {
		return memoryEntry{}, false
	}

	if entry.expired(s.now()) {
		delete(s.data, key)
		return memoryEntry{}, false
	}

	return entry, true
}

func (s *MemoryStore) SetIfAbsent(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.load(key); found {
		return false, nil
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.data[key] = entry

	return true, nil
}

func (s *MemoryStore) DeleteIfEquals(_ context.Context, key string, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.load(key)
	if !found || entry.value != value {
		return false, nil
	}

	delete(s.data, key)
	return true, nil
}

func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	entry, found := s.load(key)
	if found {
		var err error
		current, err = strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return 0, ErrCacheFailedToIncr
		}
	}

	current++
	entry.value = strconv.FormatInt(current, 10)
	s.data[key] = entry

	return current, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.load(key)
	if !found {
		return "", ErrCacheNotFound
	}

	return entry.value, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
