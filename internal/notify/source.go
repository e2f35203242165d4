package notify

import "sync"

// MemorySource is a Source backed by in-process state. The terminal client
// and tests drive it directly; a browser embedding would adapt its own auth
// store instead.
type MemorySource struct {
	mu        sync.Mutex
	session   *Session
	listeners map[int]func(*Session)
	nextID    int
}

// NewMemorySource creates an empty (logged out) source.
func NewMemorySource() *MemorySource {
	return &MemorySource{listeners: make(map[int]func(*Session))}
}

// Current returns the session at the time of the call.
func (s *MemorySource) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Subscribe registers a change listener.
func (s *MemorySource) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Set replaces the session and notifies subscribers. Pass nil on logout.
func (s *MemorySource) Set(session *Session) {
	s.mu.Lock()
	s.session = session
	fns := make([]func(*Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}
