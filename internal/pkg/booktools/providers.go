package booktools

import (
	"context"
	"io"
)

// TextGenerator calls a hosted text-generation model. Injected by the
// caller so implementations can be swapped (eino ChatModel in production,
// a fake in tests).
type TextGenerator interface {
	// Generate returns the model's completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Transcriber converts an audio stream into plain text via a hosted
// speech-to-text service.
type Transcriber interface {
	// Transcribe returns the transcript of the audio data. The filename
	// hints the container format to the remote service.
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
