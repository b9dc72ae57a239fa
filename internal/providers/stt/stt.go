package stt

import "context"

// Provider is the speech-to-text engine the gateway fronts.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (text string, err error)
	Close() error
}
