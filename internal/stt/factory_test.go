package stt

import (
	"strings"
	"testing"
	"whisperapi/internal/config"
)

func TestNewProviderLocal(t *testing.T) {
	cfg := &config.Config{Backend: "local", WhisperModelPath: "models/ggml-tiny.bin", WhisperThreads: 1}
	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Name() != "local" {
		t.Errorf("expected local backend, got %q", p.Name())
	}
}

func TestNewProviderDefaultsToLocal(t *testing.T) {
	cfg := &config.Config{WhisperModelPath: "models/ggml-tiny.bin"}
	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Name() != "local" {
		t.Errorf("expected local backend, got %q", p.Name())
	}
}

func TestNewProviderHuggingFace(t *testing.T) {
	cfg := &config.Config{Backend: "huggingface", HFModelURL: config.DefaultHFModelURL}
	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Name() != "huggingface" {
		t.Errorf("expected huggingface backend, got %q", p.Name())
	}
	if p.Model() != "openai/whisper-tiny" {
		t.Errorf("expected default model id, got %q", p.Model())
	}
}

func TestNewProviderOpenAIRequiresKey(t *testing.T) {
	cfg := &config.Config{Backend: "openai"}
	if _, err := NewProvider(cfg); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected missing key error, got %v", err)
	}

	cfg.OpenAIKey = "sk-test"
	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("expected openai backend, got %q", p.Name())
	}
}

func TestNewProviderExecRequiresCommand(t *testing.T) {
	cfg := &config.Config{Backend: "exec"}
	if _, err := NewProvider(cfg); err == nil || !strings.Contains(err.Error(), "STT_COMMAND") {
		t.Errorf("expected missing command error, got %v", err)
	}
}

func TestNewProviderUnknownBackend(t *testing.T) {
	cfg := &config.Config{Backend: "carrier-pigeon"}
	if _, err := NewProvider(cfg); err == nil || !strings.Contains(err.Error(), "unsupported STT backend") {
		t.Errorf("expected unsupported backend error, got %v", err)
	}
}
