package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"quill/internal/model/book"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/id"
)

// CreateProjectRequest carries the metadata of a new book project.
type CreateProjectRequest struct {
	Title           string `json:"title" binding:"required"`
	Subtitle        string `json:"subtitle"`
	TargetAudience  string `json:"target_audience"`
	Tone            string `json:"tone"`
	Language        string `json:"language"`
	WordCountTarget int    `json:"word_count_target"`
	UserID          string `json:"-"`
}

// CreateProject persists a new project with an empty outline.
func (s *service) CreateProject(ctx context.Context, req *CreateProjectRequest) (*book.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = "en"
	}

	proj := &book.Project{
		ID:              id.New(),
		UserID:          req.UserID,
		Title:           title,
		Subtitle:        strings.TrimSpace(req.Subtitle),
		TargetAudience:  strings.TrimSpace(req.TargetAudience),
		Tone:            strings.TrimSpace(req.Tone),
		Language:        language,
		WordCountTarget: req.WordCountTarget,
	}

	if err := s.projectRepo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Info().Str("project_id", proj.ID).Str("title", proj.Title).Msg("project created")
	return proj, nil
}

// GetProject fetches a project by id.
func (s *service) GetProject(ctx context.Context, projectID string) (*book.Project, error) {
	return s.projectRepo.FindByID(ctx, projectID)
}

// ListProjects returns all projects, newest first.
func (s *service) ListProjects(ctx context.Context) ([]*book.Project, error) {
	return s.projectRepo.List(ctx, 0)
}

// DeleteProject removes the project together with its chapters and
// source documents. Uploaded audio resources are kept; they are owned
// by the resource area, not the project.
func (s *service) DeleteProject(ctx context.Context, projectID string) error {
	mu := s.locks.lock(projectID)
	defer mu.Unlock()

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	if err := s.chapterRepo.DeleteByProjectID(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete chapters: %w", err)
	}
	if err := s.sourceRepo.DeleteByProjectID(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete source documents: %w", err)
	}

	s.invalidateOutlineCache(ctx, projectID)

	log.Info().Str("project_id", projectID).Msg("project deleted")
	return nil
}

func (s *service) invalidateOutlineCache(ctx context.Context, projectID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.OutlineCacheKey(projectID)); err != nil {
		log.Warn().Err(err).Str("project_id", projectID).Msg("failed to invalidate outline cache")
	}
}
