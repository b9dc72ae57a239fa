package session

import "fmt"

// State is the lifecycle state of a scribe session.
//
// State transitions:
//
//	Idle → Capturing → SubmittingTranscribe → AwaitingNote →
//	SubmittingGenerate → Reviewing ⇄ Saving
//
// Errored is reachable from Capturing, both Submitting states and Saving.
// Reviewing and Errored are stable rest states; the only recovery path out
// of Errored is Retry, a full reset back to Idle. There is no terminal
// state — the session ends when the surrounding application discards it.
type State int

const (
	// StateIdle - no audio selected or recorded yet.
	StateIdle State = iota
	// StateCapturing - an audio payload is being recorded or has been selected.
	StateCapturing
	// StateSubmittingTranscribe - transcription call in flight.
	StateSubmittingTranscribe
	// StateAwaitingNote - transcript received, generation about to start.
	StateAwaitingNote
	// StateSubmittingGenerate - note generation call in flight.
	StateSubmittingGenerate
	// StateReviewing - note materialized; the only state accepting edits.
	StateReviewing
	// StateSaving - persistence call in flight.
	StateSaving
	// StateErrored - a pipeline stage failed; cause preserved for display.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateCapturing:
		return "CAPTURING"
	case StateSubmittingTranscribe:
		return "SUBMITTING_TRANSCRIBE"
	case StateAwaitingNote:
		return "AWAITING_NOTE"
	case StateSubmittingGenerate:
		return "SUBMITTING_GENERATE"
	case StateReviewing:
		return "REVIEWING"
	case StateSaving:
		return "SAVING"
	case StateErrored:
		return "ERRORED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// Submitting reports whether a network stage is in flight. While true the
// only accepted external input is cancellation.
func (s State) Submitting() bool {
	return s == StateSubmittingTranscribe || s == StateSubmittingGenerate || s == StateSaving
}
