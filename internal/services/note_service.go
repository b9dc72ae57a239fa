package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	mongorepo "github.com/Utkarsh07/AshaHealth-scribe-app/internal/repositories/mongo"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

// NoteService persists reviewed notes and looks them up for later reads.
type NoteService interface {
	Save(ctx context.Context, sessionID string, note models.ClinicalNote, transcript string) (*models.SavedNote, error)
	GetByNoteID(ctx context.Context, noteID string) (*models.SavedNote, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.SavedNote, error)
}

type noteService struct {
	repo mongorepo.NoteRepository
}

func NewNoteService(repo mongorepo.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) Save(ctx context.Context, sessionID string, note models.ClinicalNote, transcript string) (*models.SavedNote, error) {
	const op = "NoteService.Save"

	if strings.TrimSpace(sessionID) == "" {
		return nil, utils.E(utils.CodeInvalidInput, op, "session_id is required", nil)
	}
	for _, sec := range models.Sections() {
		if strings.TrimSpace(note.Section(sec)) == "" {
			return nil, utils.E(utils.CodeInvalidInput, op, "note section "+string(sec)+" is empty", nil)
		}
	}

	saved := &models.SavedNote{
		NoteID:     uuid.NewString(),
		SessionID:  sessionID,
		Note:       note,
		Transcript: transcript,
	}
	if err := s.repo.Upsert(ctx, saved); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save note", err)
	}
	return saved, nil
}

func (s *noteService) GetByNoteID(ctx context.Context, noteID string) (*models.SavedNote, error) {
	const op = "NoteService.GetByNoteID"

	n, err := s.repo.GetByNoteID(ctx, noteID)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.E(utils.CodeNotFound, op, "note not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load note", err)
	}
	return n, nil
}

func (s *noteService) GetBySessionID(ctx context.Context, sessionID string) (*models.SavedNote, error) {
	const op = "NoteService.GetBySessionID"

	n, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.E(utils.CodeNotFound, op, "note not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load note", err)
	}
	return n, nil
}
