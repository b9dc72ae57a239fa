package models

// AudioOrigin tags how an audio payload was produced.
type AudioOrigin string

const (
	OriginRecorded AudioOrigin = "recorded"
	OriginUploaded AudioOrigin = "uploaded"
)

// AudioPayload is the single opaque blob a capture or upload yields.
// It is consumed exactly once by the submission client and discarded
// after a successful transcription.
type AudioPayload struct {
	Data     []byte
	MIMEType string
	Origin   AudioOrigin
	Filename string // original filename for uploads, synthetic otherwise
}

// Transcript is the full consultation text. Created once per session by
// the transcription call and read-only afterward.
type Transcript string

// TranscribeResponse is the transcription endpoint's wire contract.
type TranscribeResponse struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription,omitempty"`
	Message       string `json:"message"`
}

// GenerateNoteRequest is the note-generation endpoint's wire contract.
type GenerateNoteRequest struct {
	Text string `json:"text"`
}
