package notegen

import "context"

// Generator is the text-generation engine behind SOAP note creation.
type Generator interface {
	// Generate returns the model's full completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
