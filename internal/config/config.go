package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for the transcription backends.
const (
	DefaultHFModelURL       = "https://api-inference.huggingface.co/models/openai/whisper-tiny"
	DefaultWhisperModelPath = "models/ggml-tiny.bin"
)

type Config struct {
	Port             string
	Backend          string
	HFToken          string
	HFModelURL       string
	OpenAIKey        string
	WhisperModelPath string
	WhisperThreads   uint
	STTCommand       string
	MaxUploadMB      int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		Backend:          getEnv("STT_BACKEND", "local"),
		HFToken:          os.Getenv("HF_TOKEN"),
		HFModelURL:       getEnv("HF_MODEL_URL", DefaultHFModelURL),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		WhisperModelPath: getEnv("WHISPER_MODEL_PATH", DefaultWhisperModelPath),
		STTCommand:       os.Getenv("STT_COMMAND"),
	}

	threads, err := getEnvUint("WHISPER_THREADS", 1)
	if err != nil {
		return nil, err
	}
	cfg.WhisperThreads = threads

	maxUpload, err := getEnvUint("MAX_UPLOAD_MB", 25)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadMB = int64(maxUpload)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvUint(key string, fallback uint) (uint, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return uint(n), nil
}
