package book

import (
	bookservice "quill/internal/service/book"
)

// Handler exposes the book drafting endpoints. All book-related routes
// go through this struct.
type Handler struct {
	bookService bookservice.Service
}

// NewHandler creates the book handler.
func NewHandler(bookService bookservice.Service) *Handler {
	return &Handler{
		bookService: bookService,
	}
}
