package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"quill/internal/model/book"
	"quill/internal/pkg/id"
)

// AddSourceRequest carries one piece of source material.
type AddSourceRequest struct {
	Label string `json:"label"`
	Text  string `json:"text" binding:"required"`
}

// AddSource appends a source document to the project. The text must be
// non-empty after trimming; the project must exist.
func (s *service) AddSource(ctx context.Context, projectID string, req *AddSourceRequest) (*book.SourceDocument, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: source text is required", ErrValidation)
	}

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	doc := &book.SourceDocument{
		ID:        id.New(),
		ProjectID: projectID,
		Label:     strings.TrimSpace(req.Label),
		Text:      text,
	}

	if err := s.sourceRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create source document: %w", err)
	}

	log.Info().
		Str("project_id", projectID).
		Str("source_id", doc.ID).
		Int("text_len", len(text)).
		Msg("source document added")
	return doc, nil
}

// ListSources returns the project's source documents in creation order.
func (s *service) ListSources(ctx context.Context, projectID string) ([]*book.SourceDocument, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.sourceRepo.FindByProjectID(ctx, projectID)
}

// sourceTexts loads the project's source texts in creation order.
func (s *service) sourceTexts(ctx context.Context, projectID string) ([]string, error) {
	docs, err := s.sourceRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source documents: %w", err)
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Text)
	}
	return texts, nil
}
