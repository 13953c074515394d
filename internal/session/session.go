// Package session holds the ephemeral editing sessions of the CV builder.
// A session owns one document, one template choice and one export machine;
// nothing in it survives the process or the TTL.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tempsuisse/platform/internal/cv"
	"github.com/tempsuisse/platform/internal/export"
	"github.com/tempsuisse/platform/internal/render"
)

// Session is one user's editing state. All access to the document goes
// through Update/Snapshot so concurrent HTTP requests serialize cleanly.
type Session struct {
	ID     uuid.UUID
	Export *export.Export

	mu       sync.Mutex
	doc      *cv.Document
	template render.TemplateID
	aiBusy   map[string]bool
	lastUsed time.Time
}

// Update runs fn with exclusive access to the document.
func (s *Session) Update(fn func(doc *cv.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.doc)
}

// Snapshot returns a deep copy of the document, safe to render or encode
// outside the lock.
func (s *Session) Snapshot() *cv.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return s.doc.Clone()
}

// Template returns the active template.
func (s *Session) Template() render.TemplateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// SetTemplate switches the active template.
func (s *Session) SetTemplate(id render.TemplateID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	s.template = id
}

// BeginAI marks an assisted-text request in flight for the given target
// field. It reports false when one is already running for that target, so
// the caller can reject the duplicate.
func (s *Session) BeginAI(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aiBusy[target] {
		return false
	}
	s.aiBusy[target] = true
	return true
}

// EndAI clears the in-flight marker for a target field.
func (s *Session) EndAI(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.aiBusy, target)
}

// Store keeps the live sessions and evicts the ones idle past the TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration

	janitorStop chan struct{}
	janitorOnce sync.Once
}

// DefaultTTL is how long an idle session survives before eviction.
const DefaultTTL = 2 * time.Hour

// NewStore creates a session store. A zero ttl uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	st := &Store{
		sessions:    make(map[uuid.UUID]*Session),
		ttl:         ttl,
		janitorStop: make(chan struct{}),
	}
	go st.janitor()
	return st
}

// Create starts a session with an empty document.
func (st *Store) Create() *Session {
	return st.CreateFrom(cv.NewDocument())
}

// CreateFrom starts a session seeded with an existing document, as when the
// user re-imports a saved CV.
func (st *Store) CreateFrom(doc *cv.Document) *Session {
	s := &Session{
		ID:       uuid.New(),
		Export:   export.New(),
		doc:      doc,
		template: render.TemplateModern,
		aiBusy:   make(map[string]bool),
		lastUsed: time.Now(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session, or nil when unknown or already evicted.
func (st *Store) Get(id uuid.UUID) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Delete removes a session; unknown IDs are a no-op.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop halts the eviction goroutine.
func (st *Store) Stop() {
	st.janitorOnce.Do(func() {
		close(st.janitorStop)
	})
}

func (st *Store) janitor() {
	interval := st.ttl / 4
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-st.janitorStop:
			return
		case <-ticker.C:
			st.evictExpired()
		}
	}
}

func (st *Store) evictExpired() {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			log.Printf("session %s evicted after %s idle", id, st.ttl)
		}
	}
}
