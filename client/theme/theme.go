// Package theme holds the client's one piece of persisted preference:
// the UI theme name, stored under a fixed key and read once at init.
package theme

import "sync"

// StorageKey is the persistence key the web client has always used.
const StorageKey = "current"

// DefaultTheme applies when nothing is persisted.
const DefaultTheme = "night"

// Storage is a minimal key-value persistence backend.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryStorage is an in-memory Storage, used in tests and as a
// fallback when no persistence is available.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
}

// Store is the theme preference with subscriber notifications.
type Store struct {
	storage Storage

	mu      sync.Mutex
	theme   string
	nextSub int
	subs    map[int]func(string)
}

// NewStore reads the persisted theme from storage, falling back to
// DefaultTheme.
func NewStore(storage Storage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	theme, ok := storage.Get(StorageKey)
	if !ok || theme == "" {
		theme = DefaultTheme
	}
	return &Store{
		storage: storage,
		theme:   theme,
		subs:    make(map[int]func(string)),
	}
}

// Theme returns the current theme name.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Set persists the theme and notifies subscribers.
func (s *Store) Set(theme string) {
	s.mu.Lock()
	if theme == s.theme {
		s.mu.Unlock()
		return
	}
	s.theme = theme
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	s.storage.Set(StorageKey, theme)
	for _, fn := range fns {
		fn(theme)
	}
}

// Subscribe registers fn to run on every theme change and returns a
// cancel function.
func (s *Store) Subscribe(fn func(theme string)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
