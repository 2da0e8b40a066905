package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// hfTimeout bounds the single outbound inference call. There is no retry:
// one attempt per request.
const hfTimeout = 30 * time.Second

// HuggingFaceProvider proxies audio bytes to the Hugging Face inference API
type HuggingFaceProvider struct {
	url    string
	token  string
	client *http.Client
}

// NewHuggingFaceProvider creates a new Hugging Face STT provider. token may
// be empty; in that case a per-request token is required.
func NewHuggingFaceProvider(url, token string) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: hfTimeout},
	}
}

// Name returns the backend kind
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// Model returns the model identifier derived from the inference URL
func (p *HuggingFaceProvider) Model() string {
	if _, model, ok := strings.Cut(p.url, "/models/"); ok && model != "" {
		return model
	}
	return p.url
}

// Ready reports readiness; the provider holds no state to initialize
func (p *HuggingFaceProvider) Ready() bool {
	return true
}

// Transcribe sends the raw audio bytes to the inference endpoint with a
// bearer token. The configured token takes precedence over the per-request
// one; with neither, it fails before any network call is made.
func (p *HuggingFaceProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()

	token := p.token
	if token == "" {
		token = req.Token
	}
	if token == "" {
		return nil, BadRequest("Hugging Face token required. Set the HF_TOKEN environment variable or send an hf_token form field")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(req.Audio))
	if err != nil {
		return nil, Internal("failed to create inference request: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, Internal("inference request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Internal("failed to read inference response: %v", err)
	}

	// The token value itself is never echoed back to the caller.
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewError(http.StatusUnauthorized, "invalid Hugging Face token")
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, NewError(http.StatusServiceUnavailable, "model is loading, retry shortly")
	case resp.StatusCode != http.StatusOK:
		return nil, NewError(resp.StatusCode, "%s", string(body))
	}

	text, err := normalizeHFResponse(body)
	if err != nil {
		log.Error().Err(err).Str("body", preview(body)).Msg("unparseable inference response")
		return nil, Internal("failed to parse inference response: %v", err)
	}

	log.Info().
		Str("model", p.Model()).
		Int("chars", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("remote transcription completed")

	return &Result{Text: text}, nil
}

// normalizeHFResponse extracts the transcript from the two response shapes
// the inference API produces: an object with a text field, or a non-empty
// array whose first element is such an object or a plain value. Any other
// shape yields empty text.
func normalizeHFResponse(body []byte) (string, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", err
	}

	switch t := v.(type) {
	case map[string]any:
		if s, ok := t["text"].(string); ok {
			return s, nil
		}
	case []any:
		if len(t) == 0 {
			return "", nil
		}
		if m, ok := t[0].(map[string]any); ok {
			if s, ok := m["text"].(string); ok {
				return s, nil
			}
			return "", nil
		}
		return fmt.Sprint(t[0]), nil
	}
	return "", nil
}

func preview(body []byte) string {
	const max = 500
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
