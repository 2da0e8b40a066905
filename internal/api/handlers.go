package api

import (
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"whisperapi/internal/stt"
	"whisperapi/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// allowedExtensions is the fixed upload allow-set, matched case-insensitively
// against the filename suffix.
var allowedExtensions = []string{".mp3", ".wav", ".mp4", ".m4a", ".flac", ".ogg", ".webm"}

func allowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(allowedExtensions, ext)
}

func supportedFormats() []string {
	formats := make([]string, 0, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		formats = append(formats, strings.TrimPrefix(ext, "."))
	}
	return formats
}

// home serves the static service descriptor
func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Whisper Speech-to-Text API",
		"status":  "online",
		"backend": s.backendName(),
		"model":   s.modelName(),
		"endpoints": gin.H{
			"health":     "GET /health",
			"transcribe": "POST /transcribe (multipart/form-data with \"audio\" field)",
			"models":     "GET /models",
		},
		"supported_formats": supportedFormats(),
		"example_curl":      "curl -X POST -F \"audio=@your_file.mp3\" http://localhost:" + s.cfg.Port + "/transcribe",
	})
}

// healthCheck reports liveness and backend readiness
func (s *Server) healthCheck(c *gin.Context) {
	ready := s.provider != nil && s.provider.Ready()
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"backend":      s.backendName(),
		"model_loaded": ready,
		"version":      Version,
	})
}

// modelInfo serves static model and feature metadata
func (s *Server) modelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"current_model":     s.modelName(),
		"backend":           s.backendName(),
		"supported_formats": supportedFormats(),
		"features": []string{
			"Multiple audio formats",
			"Swappable transcription backends",
			"No persisted state",
		},
	})
}

// transcribe handles POST /transcribe: validate the multipart upload, hand
// it to the backend, and wrap the outcome in the uniform envelope.
func (s *Server) transcribe(c *gin.Context) {
	if s.provider == nil {
		msg := "transcription backend unavailable"
		if s.initErr != nil {
			msg += ": " + s.initErr.Error()
		}
		utils.Error(c, http.StatusInternalServerError, msg)
		return
	}

	file, err := c.FormFile("audio")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "No audio file provided. Send as multipart/form-data with field name \"audio\"")
		return
	}

	if file.Filename == "" {
		utils.Error(c, http.StatusBadRequest, "No file selected")
		return
	}

	if !allowedFile(file.Filename) {
		utils.Error(c, http.StatusBadRequest, "File type not supported. Allowed: "+strings.Join(supportedFormats(), ", "))
		return
	}

	if maxBytes := s.cfg.MaxUploadMB << 20; maxBytes > 0 && file.Size > maxBytes {
		utils.Error(c, http.StatusBadRequest, "file size exceeds upload limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to read uploaded file: "+err.Error())
		return
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to read uploaded file: "+err.Error())
		return
	}

	requestID := uuid.NewString()
	log.Info().
		Str("request_id", requestID).
		Str("file", file.Filename).
		Int("bytes", len(audio)).
		Str("backend", s.provider.Name()).
		Msg("processing upload")

	result, err := s.provider.Transcribe(c.Request.Context(), stt.Request{
		Audio:    audio,
		Filename: file.Filename,
		Token:    c.PostForm("hf_token"),
	})
	if err != nil {
		log.Error().
			Str("request_id", requestID).
			Str("backend", s.provider.Name()).
			Err(err).
			Msg("transcription failed")
		utils.Error(c, stt.StatusOf(err), err.Error())
		return
	}

	utils.Success(c, gin.H{
		"text":    result.Text,
		"model":   s.provider.Model(),
		"backend": s.provider.Name(),
	})
}

func (s *Server) backendName() string {
	if s.provider == nil {
		return "unavailable"
	}
	return s.provider.Name()
}

func (s *Server) modelName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Model()
}
