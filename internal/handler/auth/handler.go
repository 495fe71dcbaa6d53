package auth

import (
	authservice "quill/internal/service/auth"
)

// Handler exposes the account endpoints.
type Handler struct {
	authService authservice.Service
}

// NewHandler creates the auth handler.
func NewHandler(authService authservice.Service) *Handler {
	return &Handler{
		authService: authService,
	}
}
