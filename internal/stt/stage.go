package stt

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StageFile writes audio bytes to a uniquely named temporary file and
// returns its path together with a cleanup func. The caller must defer the
// cleanup so the file is removed whether or not transcription succeeds.
func StageFile(data []byte, suffix string) (string, func(), error) {
	path := filepath.Join(os.TempDir(), "whisperapi_"+uuid.NewString()+suffix)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, fmt.Errorf("failed to stage audio file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("failed to remove staged audio file")
		}
	}
	return path, cleanup, nil
}
