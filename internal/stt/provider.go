package stt

import "context"

// Request carries one audio upload through a transcription backend.
// It lives for the duration of a single HTTP request.
type Request struct {
	Audio    []byte // raw audio bytes as uploaded
	Filename string // original filename, used for container hints
	Token    string // optional per-request Hugging Face token
}

// Result represents the result of a speech-to-text transcription
type Result struct {
	Text string // The transcribed text
}

// Provider defines the interface for speech-to-text backends
type Provider interface {
	// Transcribe transcribes the uploaded audio and returns the result
	Transcribe(ctx context.Context, req Request) (*Result, error)

	// Name returns the backend kind (e.g. "local", "huggingface")
	Name() string

	// Model returns the model identifier reported to clients
	Model() string

	// Ready reports whether the backend is initialized and ready
	Ready() bool
}
