package stt

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"
)

// LocalProvider runs an in-process whisper.cpp model. The model is loaded
// lazily on the first transcription and kept for the process lifetime; a
// failed load is terminal until restart.
type LocalProvider struct {
	modelPath string
	threads   uint

	loadOnce sync.Once
	model    whisper.Model
	loadErr  error
	ready    atomic.Bool

	// Serializes inference; a whisper context is not safe for concurrent use.
	mu sync.Mutex
}

// NewLocalProvider creates a local whisper.cpp provider. The model file is
// not touched until the first transcription request.
func NewLocalProvider(modelPath string, threads uint) *LocalProvider {
	if threads == 0 {
		threads = 1
	}
	return &LocalProvider{modelPath: modelPath, threads: threads}
}

// Name returns the backend kind
func (p *LocalProvider) Name() string {
	return "local"
}

// Model returns the model identifier reported to clients
func (p *LocalProvider) Model() string {
	return filepath.Base(p.modelPath)
}

// Ready reports whether the model has been loaded
func (p *LocalProvider) Ready() bool {
	return p.ready.Load()
}

// load loads the whisper model at most once per process. Concurrent first
// callers share a single initialization.
func (p *LocalProvider) load() error {
	p.loadOnce.Do(func() {
		log.Info().Str("model", p.modelPath).Uint("threads", p.threads).Msg("loading whisper model")
		model, err := whisper.New(p.modelPath)
		if err != nil {
			p.loadErr = fmt.Errorf("failed to load whisper model %s: %w", p.modelPath, err)
			log.Error().Err(p.loadErr).Msg("model load failed")
			return
		}
		p.model = model
		p.ready.Store(true)
		log.Info().Str("model", p.Model()).Msg("whisper model loaded")
	})
	return p.loadErr
}

// Transcribe stages the upload to a temporary file, decodes it, and runs
// the model. The staged file is removed whether or not inference succeeds.
func (p *LocalProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if err := p.load(); err != nil {
		return nil, Internal("%v", err)
	}

	startTime := time.Now()

	// Uploads are staged under a .wav suffix regardless of the source
	// container and decoded as WAV; a non-WAV container fails the decode
	// below and surfaces as a 500.
	path, cleanup, err := StageFile(req.Audio, ".wav")
	if err != nil {
		return nil, Internal("%v", err)
	}
	defer cleanup()

	samples, err := decodeWAV(path)
	if err != nil {
		return nil, Internal("failed to decode audio: %v", err)
	}
	if len(samples) == 0 {
		return nil, Internal("no audio samples decoded from %s", req.Filename)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	wctx, err := p.model.NewContext()
	if err != nil {
		return nil, Internal("failed to create whisper context: %v", err)
	}
	wctx.SetThreads(p.threads)
	if wctx.IsMultilingual() {
		if err := wctx.SetLanguage("auto"); err != nil {
			return nil, Internal("failed to set language: %v", err)
		}
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, Internal("inference failed: %v", err)
	}

	var sb strings.Builder
	for {
		segment, err := wctx.NextSegment()
		if err != nil {
			break
		}
		sb.WriteString(segment.Text)
		sb.WriteString(" ")
	}
	text := strings.TrimSpace(sb.String())

	log.Info().
		Str("file", req.Filename).
		Int("chars", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("local transcription completed")

	return &Result{Text: text}, nil
}

// decodeWAV reads a staged WAV file and returns 16 kHz mono float32 samples
// ready for the model.
func decodeWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read PCM: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty PCM payload")
	}

	samples := monoFloat32(buf)
	return resampleLinear(samples, buf.Format.SampleRate, whisper.SampleRate), nil
}
