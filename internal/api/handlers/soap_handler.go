package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/metrics"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/services"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

type SOAPHandler struct {
	svc services.SOAPService
	m   *metrics.Metrics
	log *logrus.Logger
}

func NewSOAPHandler(svc services.SOAPService, m *metrics.Metrics, log *logrus.Logger) *SOAPHandler {
	return &SOAPHandler{svc: svc, m: m, log: log}
}

// Generate turns a transcript into a structured SOAP note.
func (h *SOAPHandler) Generate(c *gin.Context) {
	const op = "SOAPHandler.Generate"
	start := time.Now()

	var req models.GenerateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.m.RecordGenerate("error", time.Since(start).Seconds())
		writeError(c, utils.E(utils.CodeInvalidInput, op, "invalid request body", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.m.RecordGenerate("error", time.Since(start).Seconds())
		writeError(c, utils.E(utils.CodeInvalidInput, op, "text is required", nil))
		return
	}

	note, err := h.svc.GenerateNote(c.Request.Context(), req.Text)
	if err != nil {
		h.log.WithError(err).Warn("note generation failed")
		h.m.RecordGenerate("error", time.Since(start).Seconds())
		writeError(c, err)
		return
	}

	h.m.RecordGenerate("success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, note)
}
