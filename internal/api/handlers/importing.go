package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/wealthmind/internal/api/middleware"
	"github.com/dvloznov/wealthmind/internal/extract"
	"github.com/dvloznov/wealthmind/internal/jobs"
	"github.com/dvloznov/wealthmind/internal/review"
	"github.com/dvloznov/wealthmind/internal/store"
)

// ImportHandler drives the text import flow: start extraction, poll the
// session, edit candidates, then commit or cancel.
type ImportHandler struct {
	state     *State
	sessions  *review.Sessions
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(state *State, sessions *review.Sessions, publisher jobs.Publisher, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		state:     state,
		sessions:  sessions,
		publisher: publisher,
		log:       log,
	}
}

// sessionResponse is the wire shape of a review session.
type sessionResponse struct {
	SessionID  string              `json:"session_id"`
	Extracting bool                `json:"extracting"`
	Candidates []extract.Candidate `json:"candidates"`
	LastError  string              `json:"last_error,omitempty"`
}

func toSessionResponse(s *review.Session) sessionResponse {
	return sessionResponse{
		SessionID:  s.ID,
		Extracting: s.Extracting,
		Candidates: s.Buffer.Items(),
		LastError:  s.LastError,
	}
}

// StartImport handles POST /api/import
func (h *ImportHandler) StartImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	session := h.sessions.Begin()

	job := &jobs.ExtractTextJob{
		SessionID: session.ID,
		RawText:   req.Text,
	}

	if err := h.publisher.PublishExtractText(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue extraction job")
		h.sessions.End(session.ID)
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue extraction job")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("session_id", session.ID).
		Int("text_len", len(req.Text)).
		Msg("Extraction job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"session_id": session.ID,
		"job_id":     job.JobID,
		"status":     string(job.Status),
	})
}

// GetSession handles GET /api/import/{sessionID}
func (h *ImportHandler) GetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	var resp sessionResponse
	err := h.sessions.WithSession(sessionID, func(s *review.Session) error {
		resp = toSessionResponse(s)
		return nil
	})
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// UpdateCandidate handles PATCH /api/import/{sessionID}/candidates/{index}
// Out-of-range indexes are accepted and leave the buffer unchanged, so a
// stale client edit cannot fail the whole review.
func (h *ImportHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request, sessionID string, index int) {
	var req struct {
		Field string      `json:"field"`
		Value interface{} `json:"value"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Field {
	case review.FieldDate, review.FieldAmount, review.FieldType, review.FieldCategory, review.FieldDescription:
	default:
		middleware.WriteError(w, http.StatusBadRequest, "Unknown field: "+req.Field)
		return
	}

	var resp sessionResponse
	err := h.sessions.WithSession(sessionID, func(s *review.Session) error {
		s.Buffer.UpdateField(index, req.Field, req.Value)
		resp = toSessionResponse(s)
		return nil
	})
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// RemoveCandidate handles DELETE /api/import/{sessionID}/candidates/{index}
func (h *ImportHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request, sessionID string, index int) {
	var resp sessionResponse
	err := h.sessions.WithSession(sessionID, func(s *review.Session) error {
		s.Buffer.Remove(index)
		resp = toSessionResponse(s)
		return nil
	})
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// CommitSession handles POST /api/import/{sessionID}/commit
func (h *ImportHandler) CommitSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	var committed int
	err := h.sessions.WithSession(sessionID, func(s *review.Session) error {
		if s.Extracting {
			middleware.WriteError(w, http.StatusConflict, "Extraction still in progress")
			return errHandled
		}

		committed = s.Buffer.Len()
		return h.state.Update(r.Context(), func(snap *store.Snapshot) error {
			snap.Transactions = review.Commit(&s.Buffer, snap.Transactions)
			return nil
		})
	})
	if err == errHandled {
		return
	}
	if err != nil {
		if _, getErr := h.sessions.Get(sessionID); getErr != nil {
			middleware.WriteError(w, http.StatusNotFound, "Session not found")
			return
		}
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to commit session")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to commit session")
		return
	}

	h.sessions.End(sessionID)

	h.log.Info().
		Str("session_id", sessionID).
		Int("committed", committed).
		Msg("Review session committed")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"committed":  committed,
	})
}

// CancelSession handles DELETE /api/import/{sessionID}
func (h *ImportHandler) CancelSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	h.sessions.End(sessionID)
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"status":     "cancelled",
	})
}

// errHandled signals that the response was already written inside a
// session callback.
var errHandled = &handledError{}

type handledError struct{}

func (*handledError) Error() string { return "response already written" }

// ParseCandidatePath splits "{sessionID}/candidates/{index}" from an
// import subpath. Returns ok=false when the path does not match.
func ParseCandidatePath(path string) (sessionID string, index int, ok bool) {
	parts := strings.Split(path, "/")
	if len(parts) != 3 || parts[1] != "candidates" {
		return "", 0, false
	}
	idx, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, false
	}
	return parts[0], idx, true
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}
