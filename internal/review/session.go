package review

import (
	"fmt"
	"sync"

	"github.com/dvloznov/wealthmind/internal/extract"
	"github.com/google/uuid"
)

// Session is one import review flow: text goes out for extraction, the
// resulting candidates land in the buffer, the user edits them, and a
// commit or cancel ends the session. The Extracting flag gates the
// triggering control: a session accepts at most one in-flight extraction.
type Session struct {
	ID         string
	Buffer     Buffer
	Extracting bool

	// LastError holds the most recent extraction failure, for diagnosis.
	// The candidate list the user sees is empty in that case; the error is
	// informational only and cleared on the next extraction.
	LastError string
}

// Sessions is an in-memory registry of review sessions, safe for
// concurrent use by HTTP handlers.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Begin creates a new session with extraction marked in flight.
func (s *Sessions) Begin() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{ID: uuid.NewString(), Extracting: true}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session with the given ID.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("review session not found: %s", id)
	}
	return sess, nil
}

// Finish stores the extraction outcome on the session and clears the
// in-flight flag. A failed extraction leaves the buffer empty; the user
// retries by starting a new extraction.
func (s *Sessions) Finish(id string, candidates []extract.Candidate, extractErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	sess.Extracting = false
	sess.LastError = ""
	if extractErr != nil {
		sess.LastError = extractErr.Error()
		sess.Buffer.Clear()
		return
	}
	sess.Buffer.Load(candidates)
}

// End removes the session from the registry.
func (s *Sessions) End(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// WithSession runs fn while holding the registry lock, so buffer edits from
// concurrent requests do not interleave.
func (s *Sessions) WithSession(id string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("review session not found: %s", id)
	}
	return fn(sess)
}
