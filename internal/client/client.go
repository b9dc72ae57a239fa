// Package client wraps the scribe gateway's two network calls behind a
// uniform request/response contract with error normalization. Raw
// transport errors never escape this boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the gateway at baseURL. Timeout policy, if any,
// belongs to the supplied http.Client; the calls themselves never retry.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Transcribe submits the audio payload as a multipart upload and returns
// the transcript. Single-shot and cancellable through ctx.
func (c *Client) Transcribe(ctx context.Context, payload *models.AudioPayload) (models.Transcript, error) {
	const op = "Client.Transcribe"

	if payload == nil || len(payload.Data) == 0 {
		return "", utils.E(utils.CodeInvalidInput, op, "no audio payload to submit", nil)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", payload.Filename)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build upload", err)
	}
	if _, err := io.Copy(fw, bytes.NewReader(payload.Data)); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build upload", err)
	}
	if err := mw.Close(); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transcribe", &body)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", utils.E(utils.CodeNetworkError, op, "transcription service unreachable", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var tr models.TranscribeResponse
	decodeErr := json.Unmarshal(raw, &tr)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := tr.Message
		if msg == "" {
			msg = fmt.Sprintf("transcription service returned HTTP %d", resp.StatusCode)
		}
		return "", utils.E(utils.CodeServiceError, op, msg, nil)
	}
	if decodeErr != nil {
		return "", utils.E(utils.CodeServiceError, op, "transcription service returned an unreadable response", decodeErr)
	}
	if !tr.Success {
		msg := tr.Message
		if msg == "" {
			msg = "transcription failed"
		}
		return "", utils.E(utils.CodeServiceError, op, msg, nil)
	}
	if strings.TrimSpace(tr.Transcription) == "" {
		return "", utils.E(utils.CodeEmptyResult, op, "transcription service returned no usable text", nil)
	}
	return models.Transcript(tr.Transcription), nil
}

// GenerateNote submits the transcript and returns the structured SOAP
// note. A response missing any of the four sections is rejected wholesale
// as MALFORMED_RESPONSE rather than accepted with gaps.
func (c *Client) GenerateNote(ctx context.Context, transcript models.Transcript) (*models.ClinicalNote, error) {
	const op = "Client.GenerateNote"

	reqBody, err := json.Marshal(models.GenerateNoteRequest{Text: string(transcript)})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to build request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-soap", bytes.NewReader(reqBody))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, utils.E(utils.CodeNetworkError, op, "note generation service unreachable", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, utils.E(utils.CodeServiceError, op, serviceMessage(raw, resp.StatusCode), nil)
	}

	var note models.ClinicalNote
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, utils.E(utils.CodeMalformedResponse, op, "note generation service returned an unreadable response", err)
	}

	var missing []string
	for _, section := range models.Sections() {
		if strings.TrimSpace(note.Section(section)) == "" {
			missing = append(missing, string(section))
		}
	}
	if len(missing) > 0 {
		return nil, utils.E(utils.CodeMalformedResponse, op,
			fmt.Sprintf("generated note is missing sections: %s", strings.Join(missing, ", ")), nil)
	}
	return &note, nil
}

// SaveNote persists a reviewed note through the gateway's persistence
// collaborator and returns the stored note ID.
func (c *Client) SaveNote(ctx context.Context, sessionID string, transcript models.Transcript, note *models.ClinicalNote) (string, error) {
	const op = "Client.SaveNote"

	reqBody, err := json.Marshal(map[string]any{
		"session_id": sessionID,
		"transcript": string(transcript),
		"note":       note,
	})
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/notes", bytes.NewReader(reqBody))
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", utils.E(utils.CodeNetworkError, op, "persistence service unreachable", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", utils.E(utils.CodeServiceError, op, serviceMessage(raw, resp.StatusCode), nil)
	}

	var out struct {
		NoteID string `json:"note_id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.NoteID == "" {
		return "", utils.E(utils.CodeServiceError, op, "persistence service returned an unreadable response", err)
	}
	return out.NoteID, nil
}

func serviceMessage(raw []byte, status int) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return fmt.Sprintf("service returned HTTP %d", status)
}
