package resource

import (
	resourceservice "quill/internal/service/resource"
	transcriptionservice "quill/internal/service/transcription"
)

// Handler exposes the audio upload and transcription endpoints.
type Handler struct {
	resourceService      resourceservice.Service
	transcriptionService transcriptionservice.Service
}

// NewHandler creates the resource handler. transcriptionService may be
// nil when no transcription provider is configured.
func NewHandler(resourceService resourceservice.Service, transcriptionService transcriptionservice.Service) *Handler {
	return &Handler{
		resourceService:      resourceService,
		transcriptionService: transcriptionService,
	}
}
