package services

import (
	"context"
	"testing"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

type fakeNoteRepo struct {
	bySession map[string]*models.SavedNote
	failWith  error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{bySession: make(map[string]*models.SavedNote)}
}

func (r *fakeNoteRepo) Create(ctx context.Context, n *models.SavedNote) error {
	return r.Upsert(ctx, n)
}

func (r *fakeNoteRepo) Upsert(ctx context.Context, n *models.SavedNote) error {
	if r.failWith != nil {
		return r.failWith
	}
	cp := *n
	r.bySession[n.SessionID] = &cp
	return nil
}

func (r *fakeNoteRepo) GetByNoteID(ctx context.Context, noteID string) (*models.SavedNote, error) {
	for _, n := range r.bySession {
		if n.NoteID == noteID {
			return n, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeNoteRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.SavedNote, error) {
	if n, ok := r.bySession[sessionID]; ok {
		return n, nil
	}
	return nil, utils.ErrNotFound
}

func completeNote() models.ClinicalNote {
	return models.ClinicalNote{
		Subjective: "- Headache",
		Objective:  "- BP 120/80",
		Assessment: "- Tension headache",
		Plan:       "- Ibuprofen",
	}
}

func TestNoteServiceSaveAndGet(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := NewNoteService(repo)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "sess-1", completeNote(), "raw transcript")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.NoteID == "" {
		t.Fatal("no note_id assigned")
	}

	got, err := svc.GetByNoteID(ctx, saved.NoteID)
	if err != nil {
		t.Fatalf("GetByNoteID: %v", err)
	}
	if got.Transcript != "raw transcript" {
		t.Errorf("transcript = %q", got.Transcript)
	}

	// re-saving the same session replaces, not duplicates
	again, err := svc.Save(ctx, "sess-1", completeNote(), "edited transcript")
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if len(repo.bySession) != 1 {
		t.Fatalf("sessions stored = %d, want 1", len(repo.bySession))
	}
	if again.NoteID == saved.NoteID {
		t.Error("expected a fresh note_id per save")
	}
}

func TestNoteServiceSaveValidation(t *testing.T) {
	svc := NewNoteService(newFakeNoteRepo())
	ctx := context.Background()

	if _, err := svc.Save(ctx, "  ", completeNote(), "t"); !utils.IsCode(err, utils.CodeInvalidInput) {
		t.Errorf("blank session: err = %v", err)
	}

	partial := completeNote()
	partial.Plan = "   "
	if _, err := svc.Save(ctx, "sess-1", partial, "t"); !utils.IsCode(err, utils.CodeInvalidInput) {
		t.Errorf("empty section: err = %v", err)
	}
}

func TestNoteServiceGetMissing(t *testing.T) {
	svc := NewNoteService(newFakeNoteRepo())

	_, err := svc.GetByNoteID(context.Background(), "nope")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
	_, err = svc.GetBySessionID(context.Background(), "nope")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}
