package review

import (
	"errors"
	"testing"

	"github.com/dvloznov/wealthmind/internal/extract"
)

func TestSessionLifecycle(t *testing.T) {
	sessions := NewSessions()

	s := sessions.Begin()
	if s.ID == "" {
		t.Fatal("Begin returned session with empty ID")
	}
	if !s.Extracting {
		t.Error("New session should be marked extracting")
	}

	got, err := sessions.Get(s.ID)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", s.ID, err)
	}
	if got.ID != s.ID {
		t.Errorf("Get returned session %q, want %q", got.ID, s.ID)
	}

	sessions.End(s.ID)
	if _, err := sessions.Get(s.ID); err == nil {
		t.Error("Get succeeded after End, want error")
	}
}

func TestSessionsFinishLoadsBuffer(t *testing.T) {
	sessions := NewSessions()
	s := sessions.Begin()

	candidates := []extract.Candidate{{Description: strPtr("Lunch")}}
	sessions.Finish(s.ID, candidates, nil)

	got, err := sessions.Get(s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Extracting {
		t.Error("Extracting flag not cleared by Finish")
	}
	if got.Buffer.Len() != 1 {
		t.Errorf("Buffer.Len() = %d, want 1", got.Buffer.Len())
	}
	if got.LastError != "" {
		t.Errorf("LastError = %q, want empty", got.LastError)
	}
}

func TestSessionsFinishWithError(t *testing.T) {
	sessions := NewSessions()
	s := sessions.Begin()

	sessions.Finish(s.ID, nil, errors.New("model unavailable"))

	got, err := sessions.Get(s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Extracting {
		t.Error("Extracting flag not cleared after failed extraction")
	}
	if got.Buffer.Len() != 0 {
		t.Errorf("Buffer.Len() = %d after failure, want 0", got.Buffer.Len())
	}
	if got.LastError == "" {
		t.Error("LastError empty after failed extraction")
	}
}

func TestSessionsFinishUnknownSession(t *testing.T) {
	sessions := NewSessions()
	// Must not panic for a session that was cancelled mid-extraction
	sessions.Finish("gone", []extract.Candidate{{}}, nil)
}

func TestWithSession(t *testing.T) {
	sessions := NewSessions()
	s := sessions.Begin()

	err := sessions.WithSession(s.ID, func(sess *Session) error {
		sess.Buffer.Load([]extract.Candidate{{}, {}})
		return nil
	})
	if err != nil {
		t.Fatalf("WithSession failed: %v", err)
	}

	got, _ := sessions.Get(s.ID)
	if got.Buffer.Len() != 2 {
		t.Errorf("Buffer.Len() = %d, want 2", got.Buffer.Len())
	}

	if err := sessions.WithSession("missing", func(*Session) error { return nil }); err == nil {
		t.Error("WithSession on unknown session returned nil error")
	}
}
