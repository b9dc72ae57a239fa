package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/services"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

type NoteHandler struct {
	svc        services.NoteService
	notesSaved prometheus.Counter
	log        *logrus.Logger
}

func NewNoteHandler(svc services.NoteService, notesSaved prometheus.Counter, log *logrus.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, notesSaved: notesSaved, log: log}
}

type SaveNoteRequest struct {
	SessionID  string              `json:"session_id" binding:"required"`
	Note       models.ClinicalNote `json:"note" binding:"required"`
	Transcript string              `json:"transcript"`
}

type SaveNoteResponse struct {
	NoteID string `json:"note_id"`
}

// Save persists a reviewed note. Re-saving for the same session replaces
// the previous copy.
func (h *NoteHandler) Save(c *gin.Context) {
	const op = "NoteHandler.Save"

	var req SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidInput, op, "invalid request body", err))
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), req.SessionID, req.Note, req.Transcript)
	if err != nil {
		h.log.WithError(err).Warn("note save failed")
		writeError(c, err)
		return
	}

	h.notesSaved.Inc()
	c.JSON(http.StatusOK, SaveNoteResponse{NoteID: saved.NoteID})
}

func (h *NoteHandler) Get(c *gin.Context) {
	const op = "NoteHandler.Get"

	noteID := c.Param("note_id")
	if noteID == "" {
		writeError(c, utils.E(utils.CodeInvalidInput, op, "missing note_id", nil))
		return
	}

	n, err := h.svc.GetByNoteID(c.Request.Context(), noteID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}
