package stt

import (
	"fmt"
	"strings"
	"whisperapi/internal/config"

	"github.com/rs/zerolog/log"
)

// NewProvider creates the STT backend selected by STT_BACKEND.
func NewProvider(cfg *config.Config) (Provider, error) {
	backend := strings.ToLower(cfg.Backend)
	if backend == "" {
		backend = "local"
	}

	switch backend {
	case "local":
		log.Info().Str("model", cfg.WhisperModelPath).Msg("using local whisper backend")
		return NewLocalProvider(cfg.WhisperModelPath, cfg.WhisperThreads), nil
	case "huggingface", "hf":
		log.Info().Str("url", cfg.HFModelURL).Msg("using Hugging Face backend")
		return NewHuggingFaceProvider(cfg.HFModelURL, cfg.HFToken), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		log.Info().Msg("using OpenAI backend")
		return NewOpenAIProvider(cfg.OpenAIKey), nil
	case "exec":
		if cfg.STTCommand == "" {
			return nil, fmt.Errorf("STT_COMMAND environment variable is not set")
		}
		p, err := NewExecProvider(cfg.STTCommand)
		if err != nil {
			return nil, err
		}
		log.Info().Str("command", cfg.STTCommand).Msg("using exec backend")
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported STT backend: %s. Supported: local, huggingface, openai, exec", cfg.Backend)
	}
}
