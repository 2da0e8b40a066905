package api

import (
	"whisperapi/internal/config"
	"whisperapi/internal/stt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Server owns the transcription backend and the HTTP handlers in front of
// it. Backend construction happens once at startup; a construction failure
// is kept and reported per request rather than crashing the process.
type Server struct {
	cfg      *config.Config
	provider stt.Provider
	initErr  error
}

// NewServer builds the backend selected by configuration.
func NewServer(cfg *config.Config) *Server {
	provider, err := stt.NewProvider(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to create STT backend")
	}
	return &Server{cfg: cfg, provider: provider, initErr: err}
}

// RegisterRoutes mounts the HTTP surface on the gin engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.home)
	r.GET("/health", s.healthCheck)
	r.GET("/models", s.modelInfo)
	r.POST("/transcribe", s.transcribe)
}
