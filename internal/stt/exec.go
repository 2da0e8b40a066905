package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/rs/zerolog/log"
)

// ExecProvider shells out to an external recognizer command. The staged
// audio file path is appended as the last argument and the command must
// print a JSON object with a text field on stdout.
type ExecProvider struct {
	args []string
}

type execOutput struct {
	Text string `json:"text"`
}

// NewExecProvider parses the recognizer command line and verifies the
// binary is resolvable.
func NewExecProvider(command string) (*ExecProvider, error) {
	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse STT_COMMAND: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("STT_COMMAND is empty")
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		return nil, fmt.Errorf("STT_COMMAND binary not found: %w", err)
	}
	return &ExecProvider{args: args}, nil
}

// Name returns the backend kind
func (p *ExecProvider) Name() string {
	return "exec"
}

// Model returns the model identifier reported to clients
func (p *ExecProvider) Model() string {
	return filepath.Base(p.args[0])
}

// Ready reports readiness; the binary was resolved at construction
func (p *ExecProvider) Ready() bool {
	return true
}

// Transcribe stages the upload and runs the recognizer command against it.
func (p *ExecProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()

	suffix := strings.ToLower(filepath.Ext(req.Filename))
	if suffix == "" {
		suffix = ".wav"
	}
	path, cleanup, err := StageFile(req.Audio, suffix)
	if err != nil {
		return nil, Internal("%v", err)
	}
	defer cleanup()

	args := append(append([]string{}, p.args[1:]...), path)
	cmd := exec.CommandContext(ctx, p.args[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, Internal("transcription command failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	var out execOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, Internal("failed to parse recognizer output: %v", err)
	}

	text := strings.TrimSpace(out.Text)
	log.Info().
		Str("file", req.Filename).
		Int("chars", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("exec transcription completed")

	return &Result{Text: text}, nil
}
