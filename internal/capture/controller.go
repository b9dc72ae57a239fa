// Package capture produces a single audio payload from either a live
// microphone session or a user-selected file.
package capture

import (
	"context"
	"strings"
	"sync"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

// ChunkSource delivers recorded audio as an ordered stream of chunks.
// Start opens the device and returns the chunk channel; the channel is
// closed after the final chunk once Stop is called.
type ChunkSource interface {
	Start(ctx context.Context) (<-chan []byte, error)
	Stop() error
	MIMEType() string
}

// Controller owns microphone/file capture for one session.
type Controller struct {
	source ChunkSource

	mu        sync.Mutex
	recording bool
	chunks    [][]byte
	payload   *models.AudioPayload

	drained chan struct{}
	stop    func() error
}

func NewController(source ChunkSource) *Controller {
	return &Controller{source: source}
}

// SelectFile accepts an uploaded file as the session's audio payload.
// Only declared audio media types are accepted; on rejection any prior
// selection is left untouched.
func (c *Controller) SelectFile(name, mimeType string, data []byte) error {
	const op = "Controller.SelectFile"

	if !strings.HasPrefix(mimeType, "audio/") {
		return utils.E(utils.CodeInvalidInput, op, "selected file is not an audio file", nil)
	}
	if len(data) == 0 {
		return utils.E(utils.CodeInvalidInput, op, "selected file is empty", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = &models.AudioPayload{
		Data:     data,
		MIMEType: mimeType,
		Origin:   models.OriginUploaded,
		Filename: name,
	}
	return nil
}

// StartCapture opens the microphone source and begins accumulating chunks
// in arrival order. A no-op when a capture is already active.
func (c *Controller) StartCapture(ctx context.Context) error {
	const op = "Controller.StartCapture"

	c.mu.Lock()
	if c.recording {
		c.mu.Unlock()
		return nil
	}
	if c.source == nil {
		c.mu.Unlock()
		return utils.E(utils.CodeDeviceUnavailable, op, "no audio input device available", nil)
	}
	c.mu.Unlock()

	ch, err := c.source.Start(ctx)
	if err != nil {
		return utils.E(utils.CodeDeviceUnavailable, op, "microphone unavailable", err)
	}

	c.mu.Lock()
	c.recording = true
	c.chunks = nil
	c.drained = make(chan struct{})
	c.stop = c.source.Stop
	c.mu.Unlock()

	// Single consumer goroutine: channel receive order is chunk arrival
	// order, so appends preserve it.
	go func(ch <-chan []byte, drained chan struct{}) {
		defer close(drained)
		for chunk := range ch {
			if len(chunk) == 0 {
				continue
			}
			c.mu.Lock()
			c.chunks = append(c.chunks, chunk)
			c.mu.Unlock()
		}
	}(ch, c.drained)

	return nil
}

// StopCapture ends the active recording and yields the accumulated audio
// as one payload, chunks concatenated in arrival order.
func (c *Controller) StopCapture() (*models.AudioPayload, error) {
	const op = "Controller.StopCapture"

	c.mu.Lock()
	if !c.recording {
		c.mu.Unlock()
		return nil, utils.E(utils.CodeNotRecording, op, "no capture in progress", nil)
	}
	stop := c.stop
	drained := c.drained
	c.mu.Unlock()

	if err := stop(); err != nil {
		c.mu.Lock()
		c.recording = false
		c.mu.Unlock()
		return nil, utils.E(utils.CodeDeviceUnavailable, op, "failed to stop capture", err)
	}
	<-drained

	c.mu.Lock()
	defer c.mu.Unlock()

	var total int
	for _, chunk := range c.chunks {
		total += len(chunk)
	}
	data := make([]byte, 0, total)
	for _, chunk := range c.chunks {
		data = append(data, chunk...)
	}

	c.recording = false
	c.chunks = nil
	c.payload = &models.AudioPayload{
		Data:     data,
		MIMEType: c.source.MIMEType(),
		Origin:   models.OriginRecorded,
		Filename: "recording" + extensionFor(c.source.MIMEType()),
	}
	return c.payload, nil
}

// Recording reports whether a capture is currently active.
func (c *Controller) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording
}

// Payload returns the most recent payload from either SelectFile or
// StopCapture.
func (c *Controller) Payload() (*models.AudioPayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload, c.payload != nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/mpeg":
		return ".mp3"
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".bin"
	}
}
