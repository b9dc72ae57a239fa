// Package session orchestrates one capture → submit → transcribe →
// generate → review/edit → save run and owns the only mutable shared
// resource, the working copy of the clinical note.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/capture"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/handoff"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/provenance"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

// Submitter performs the two pipeline network calls. Calls are
// single-shot; the session decides what, if anything, happens after a
// failure.
type Submitter interface {
	Transcribe(ctx context.Context, payload *models.AudioPayload) (models.Transcript, error)
	GenerateNote(ctx context.Context, transcript models.Transcript) (*models.ClinicalNote, error)
}

// Saver is the external persistence collaborator Save delegates to.
type Saver interface {
	SaveNote(ctx context.Context, sessionID string, transcript models.Transcript, note *models.ClinicalNote) (string, error)
}

// Session drives a single consultation through the pipeline. Exactly one
// transcript and at most one clinical note exist per session; starting
// over means constructing a fresh session (or Retry, which resets this
// one completely), never mutating a finished run.
type Session struct {
	id      string
	capture *capture.Controller
	submit  Submitter
	saver   Saver
	slots   handoff.Store
	log     *logrus.Entry

	mu         sync.Mutex
	state      State
	generation uint64 // bumped on Retry/Cancel; stale-response guard
	cancelled  bool

	payload     *models.AudioPayload
	transcript  models.Transcript
	original    *models.ClinicalNote // immutable once set
	working     *models.ClinicalNote // the only user-editable copy
	savedNoteID string

	errCode  utils.Code
	errCause string
}

func New(ctrl *capture.Controller, submit Submitter, saver Saver, slots handoff.Store, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
	}
	id := uuid.NewString()
	return &Session{
		id:      id,
		capture: ctrl,
		submit:  submit,
		saver:   saver,
		slots:   slots,
		log:     log.WithField("session_id", id),
		state:   StateIdle,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure code and its human-readable cause, preserved
// verbatim from the failing stage. Only meaningful in StateErrored.
func (s *Session) Err() (utils.Code, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errCode, s.errCause
}

// StartCapture begins microphone recording: Idle → Capturing. Idempotent
// while already capturing. A device failure is surfaced and the session
// stays where it was.
func (s *Session) StartCapture(ctx context.Context) error {
	const op = "Session.StartCapture"

	s.mu.Lock()
	if s.state != StateIdle && s.state != StateCapturing {
		defer s.mu.Unlock()
		return utils.E(utils.CodeConflict, op, fmt.Sprintf("cannot start capture in state %s", s.state), nil)
	}
	s.mu.Unlock()

	if err := s.capture.StartCapture(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateCapturing
	s.mu.Unlock()
	s.log.Debug("capture started")
	return nil
}

// SelectFile accepts an uploaded audio file: Idle → Capturing. An invalid
// file is surfaced without a state change.
func (s *Session) SelectFile(name, mimeType string, data []byte) error {
	const op = "Session.SelectFile"

	s.mu.Lock()
	if s.state != StateIdle && s.state != StateCapturing {
		defer s.mu.Unlock()
		return utils.E(utils.CodeConflict, op, fmt.Sprintf("cannot select a file in state %s", s.state), nil)
	}
	s.mu.Unlock()

	if err := s.capture.SelectFile(name, mimeType, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateCapturing
	s.mu.Unlock()
	s.log.WithField("file", name).Debug("file selected")
	return nil
}

// Submit runs the two network stages in strict order: transcribe, then —
// only after the transcript resolves — generate. On success the session
// rests in Reviewing with the note materialized as the working copy; any
// stage failure routes to Errored. A response that resolves after the
// session was cancelled or reset is discarded without touching state.
func (s *Session) Submit(ctx context.Context) error {
	const op = "Session.Submit"

	s.mu.Lock()
	if s.state != StateCapturing {
		defer s.mu.Unlock()
		return utils.E(utils.CodeConflict, op, fmt.Sprintf("cannot submit in state %s", s.state), nil)
	}
	gen := s.generation
	s.mu.Unlock()

	payload, err := s.collectPayload()
	if err != nil {
		return err
	}

	s.setState(gen, StateSubmittingTranscribe)
	transcript, err := s.submit.Transcribe(ctx, payload)
	if s.stale(gen) {
		s.log.Warn("discarding transcription result for superseded session")
		return nil
	}
	if err != nil {
		s.fail(gen, err)
		return err
	}

	s.mu.Lock()
	s.transcript = transcript
	s.payload = nil // consumed exactly once, discarded on success
	s.state = StateAwaitingNote
	s.mu.Unlock()

	if s.slots != nil {
		if err := s.slots.Set(ctx, s.id, string(transcript)); err != nil {
			// The in-memory transcript is authoritative; a dead handoff
			// slot only affects cross-process review.
			s.log.WithError(err).Warn("failed to store transcript handoff")
		}
	}

	// AwaitingNote auto-triggers generation; no user action in between.
	s.setState(gen, StateSubmittingGenerate)
	note, err := s.submit.GenerateNote(ctx, transcript)
	if s.stale(gen) {
		s.log.Warn("discarding generated note for superseded session")
		return nil
	}
	if err != nil {
		s.fail(gen, err)
		return err
	}

	s.mu.Lock()
	s.original = note
	s.working = note.Clone()
	s.state = StateReviewing
	s.mu.Unlock()
	s.log.WithField("confidence", note.ConfidenceScore).Info("note ready for review")
	return nil
}

func (s *Session) collectPayload() (*models.AudioPayload, error) {
	const op = "Session.Submit"

	if s.capture.Recording() {
		payload, err := s.capture.StopCapture()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.payload = payload
		s.mu.Unlock()
		return payload, nil
	}
	payload, ok := s.capture.Payload()
	if !ok {
		return nil, utils.E(utils.CodeInvalidInput, op, "no audio captured or selected", nil)
	}
	s.mu.Lock()
	s.payload = payload
	s.mu.Unlock()
	return payload, nil
}

// EditSection updates the working copy in place. Legal only while
// Reviewing; fragments and the original note are never touched.
func (s *Session) EditSection(section models.SectionID, text string) error {
	const op = "Session.EditSection"

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReviewing {
		return utils.E(utils.CodeConflict, op, fmt.Sprintf("edits are not accepted in state %s", s.state), nil)
	}
	s.working.SetSection(section, text)
	return nil
}

// ReviewLines recomputes the provenance mapping for one section of the
// working copy. Pure, recomputed on every call, never cached.
func (s *Session) ReviewLines(section models.SectionID) []models.ReviewLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working == nil {
		return nil
	}
	return provenance.MatchLines(section, s.working.Section(section), s.original.Fragments)
}

// Save delegates the working copy to the persistence collaborator:
// Reviewing → Saving → Reviewing. On failure the session reports Errored
// but the in-progress edits are kept intact.
func (s *Session) Save(ctx context.Context) error {
	const op = "Session.Save"

	s.mu.Lock()
	if s.state != StateReviewing {
		defer s.mu.Unlock()
		return utils.E(utils.CodeConflict, op, fmt.Sprintf("cannot save in state %s", s.state), nil)
	}
	gen := s.generation
	s.state = StateSaving
	note := s.working
	transcript := s.transcript
	s.mu.Unlock()

	noteID, err := s.saver.SaveNote(ctx, s.id, transcript, note)
	if s.stale(gen) {
		return nil
	}
	if err != nil {
		s.fail(gen, err)
		return err
	}

	s.mu.Lock()
	s.savedNoteID = noteID
	s.state = StateReviewing
	s.mu.Unlock()
	s.log.WithField("note_id", noteID).Info("note saved")
	return nil
}

// Retry is the only recovery path out of Errored: a full reset back to
// Idle. No partial resume — the network stages are not safe to re-enter
// from arbitrary midpoints.
func (s *Session) Retry() error {
	const op = "Session.Retry"

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateErrored {
		return utils.E(utils.CodeConflict, op, fmt.Sprintf("retry is only legal from ERRORED, not %s", s.state), nil)
	}
	s.generation++
	s.payload = nil
	s.transcript = ""
	s.original = nil
	s.working = nil
	s.savedNoteID = ""
	s.errCode = ""
	s.errCause = ""
	s.state = StateIdle
	return nil
}

// Cancel abandons the session. Any network response that resolves
// afterwards is dropped instead of being applied to the stale session.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	s.generation++
	s.mu.Unlock()

	if s.slots != nil {
		_ = s.slots.Del(context.Background(), s.id)
	}
	s.log.Debug("session cancelled")
}

func (s *Session) Transcript() models.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// Note returns the editable working copy.
func (s *Session) Note() *models.ClinicalNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working
}

// OriginalNote returns the generation result as received. It is retained
// unmodified so diff/revert semantics stay possible.
func (s *Session) OriginalNote() *models.ClinicalNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

func (s *Session) SavedNoteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedNoteID
}

// stale reports whether the pipeline run that started at generation gen
// has been superseded by Cancel or Retry.
func (s *Session) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled || s.generation != gen
}

func (s *Session) setState(gen uint64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled || s.generation != gen {
		return
	}
	s.state = st
}

func (s *Session) fail(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled || s.generation != gen {
		return
	}
	s.state = StateErrored
	s.errCause = utils.Cause(err)
	s.errCode = utils.CodeInternal
	var ae *utils.AppError
	if errors.As(err, &ae) {
		s.errCode = ae.Code
	}
	s.log.WithField("code", s.errCode).WithError(err).Error("pipeline stage failed")
}
