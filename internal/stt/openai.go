package stt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider transcribes through the OpenAI audio API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI STT provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
	}
}

// Name returns the backend kind
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Model returns the model identifier reported to clients
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Ready reports readiness; the provider holds no state to initialize
func (p *OpenAIProvider) Ready() bool {
	return true
}

// Transcribe sends the audio to the OpenAI transcription endpoint. API
// errors keep their upstream status; transport errors surface as 500.
func (p *OpenAIProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: req.Filename,
		Reader:   bytes.NewReader(req.Audio),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			return nil, NewError(apiErr.HTTPStatusCode, "OpenAI transcription failed: %s", apiErr.Message)
		}
		return nil, Internal("OpenAI transcription failed: %v", err)
	}

	text := strings.TrimSpace(resp.Text)
	log.Info().
		Str("file", req.Filename).
		Int("chars", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("openai transcription completed")

	return &Result{Text: text}, nil
}
