package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/metrics"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/providers/stt"
)

type WSHandler struct {
	stt      stt.Provider
	m        *metrics.Metrics
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(p stt.Provider, m *metrics.Metrics, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		stt: p,
		m:   m,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type     string `json:"type"`      // "finalize" | "reset"
	MIMEType string `json:"mime_type"` // optional, defaults to audio/wav
}

type wsServerMsg struct {
	Type          string `json:"type"` // "transcript" | "error" | "ack"
	Success       bool   `json:"success"`
	Transcription string `json:"transcription,omitempty"`
	Message       string `json:"message,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

// AudioWS streams audio over a websocket. Binary frames accumulate chunks;
// a "finalize" control frame transcribes the accumulated audio and returns
// the transcript on the same connection.
func (h *WSHandler) AudioWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	h.m.WSConnectionsActive.Inc()
	defer h.m.WSConnectionsActive.Dec()

	wc := &wsConn{c: conn}
	var buf []byte

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		msgType, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		switch msgType {
		case websocket.BinaryMessage:
			if len(buf)+len(data) > maxAudioBytes {
				_ = wc.writeJSON(wsServerMsg{Type: "error", Message: "audio stream too large"})
				return
			}
			buf = append(buf, data...)
			h.m.WSChunksReceived.Inc()
			h.m.AudioBytesReceived.Add(float64(len(data)))

		case websocket.TextMessage:
			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeJSON(wsServerMsg{Type: "error", Message: "invalid json"})
				continue
			}

			switch msg.Type {
			case "reset":
				buf = nil
				_ = wc.writeJSON(wsServerMsg{Type: "ack", Success: true})

			case "finalize":
				if len(buf) == 0 {
					_ = wc.writeJSON(wsServerMsg{Type: "error", Message: "no audio received"})
					continue
				}
				mime := msg.MIMEType
				if mime == "" {
					mime = "audio/wav"
				}

				text, terr := h.stt.Transcribe(c.Request.Context(), buf, mime)
				if terr != nil {
					h.log.WithError(terr).Warn("websocket transcription failed")
					_ = wc.writeJSON(wsServerMsg{Type: "error", Message: "transcription failed"})
					buf = nil
					continue
				}
				if strings.TrimSpace(text) == "" {
					_ = wc.writeJSON(wsServerMsg{Type: "error", Message: "no speech detected in audio"})
					buf = nil
					continue
				}

				_ = wc.writeJSON(wsServerMsg{Type: "transcript", Success: true, Transcription: text})
				buf = nil

			default:
				_ = wc.writeJSON(wsServerMsg{Type: "error", Message: "unknown message type"})
			}
		}
	}
}
