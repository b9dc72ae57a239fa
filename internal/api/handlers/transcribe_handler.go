package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/metrics"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/providers/stt"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

// maxAudioBytes caps a single upload. WAV at 16kHz mono runs ~2MB/min,
// so this comfortably covers the 40 minute visit ceiling.
const maxAudioBytes = 100 << 20

type TranscribeHandler struct {
	stt stt.Provider
	m   *metrics.Metrics
	log *logrus.Logger
}

func NewTranscribeHandler(p stt.Provider, m *metrics.Metrics, log *logrus.Logger) *TranscribeHandler {
	return &TranscribeHandler{stt: p, m: m, log: log}
}

// Transcribe accepts a multipart audio upload and returns the transcript.
// Failures keep the {success:false, message} envelope so clients can
// surface the message verbatim.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	const op = "TranscribeHandler.Transcribe"
	start := time.Now()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.fail(c, start, 0, utils.E(utils.CodeInvalidInput, op, "multipart field 'file' is required", err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "audio/") {
		h.fail(c, start, 0, utils.E(utils.CodeInvalidInput, op, "file must be an audio type, got "+contentType, nil))
		return
	}
	if fileHeader.Size > maxAudioBytes {
		h.fail(c, start, 0, utils.E(utils.CodeInvalidInput, op, "audio file too large", nil))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.fail(c, start, 0, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(io.LimitReader(f, maxAudioBytes))
	if err != nil {
		h.fail(c, start, 0, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}
	if len(audio) == 0 {
		h.fail(c, start, 0, utils.E(utils.CodeInvalidInput, op, "audio file is empty", nil))
		return
	}

	text, err := h.stt.Transcribe(c.Request.Context(), audio, contentType)
	if err != nil {
		h.fail(c, start, len(audio), utils.E(utils.CodeServiceError, op, "transcription failed: "+utils.Cause(err), err))
		return
	}
	if strings.TrimSpace(text) == "" {
		h.fail(c, start, len(audio), utils.E(utils.CodeEmptyResult, op, "no speech detected in audio", nil))
		return
	}

	h.m.RecordTranscribe("success", len(audio), time.Since(start).Seconds())
	c.JSON(http.StatusOK, models.TranscribeResponse{
		Success:       true,
		Transcription: text,
		Message:       "Transcription completed successfully",
	})
}

func (h *TranscribeHandler) fail(c *gin.Context, start time.Time, audioBytes int, err error) {
	h.log.WithError(err).Warn("transcription request failed")
	h.m.RecordTranscribe("error", audioBytes, time.Since(start).Seconds())
	c.JSON(utils.HTTPStatus(err), models.TranscribeResponse{
		Success: false,
		Message: utils.Cause(err),
	})
}
