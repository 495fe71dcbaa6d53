package book

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"quill/internal/model/book"
	"quill/internal/pkg/booktools"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/id"
)

// BuildOutline generates a fresh outline from the project's source
// documents and replaces the chapter set with pending stubs.
//
// Ordering matters: generation and validation happen first, against a
// snapshot of the sources, and only a fully validated outline is allowed
// to touch storage. A failed build leaves the previous outline and all
// chapters, drafted or not, untouched.
func (s *service) BuildOutline(ctx context.Context, projectID string) (*book.OutlineDocument, []*book.Chapter, error) {
	mu := s.locks.lock(projectID)
	defer mu.Unlock()

	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	texts, err := s.sourceTexts(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if len(texts) == 0 {
		return nil, nil, ErrNoSources
	}

	outline, err := s.outlineBuilder.Build(ctx, projectContext(proj), texts)
	if err != nil {
		log.Error().Err(err).Str("project_id", projectID).Msg("outline generation failed")
		return nil, nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// Point of no return: everything below replaces existing state.
	chapters := make([]*book.Chapter, 0, len(outline.Chapters))
	outlineDoc := &book.OutlineDocument{
		Chapters: make([]book.OutlineChapter, 0, len(outline.Chapters)),
	}
	for _, stub := range outline.Chapters {
		chapters = append(chapters, &book.Chapter{
			ID:        id.New(),
			ProjectID: projectID,
			Order:     stub.Order,
			Title:     stub.Title,
			Summary:   stub.Summary,
		})
		outlineDoc.Chapters = append(outlineDoc.Chapters, book.OutlineChapter{
			Order:   stub.Order,
			Title:   stub.Title,
			Summary: stub.Summary,
		})
	}

	if err := s.chapterRepo.ReplaceForProject(ctx, projectID, chapters); err != nil {
		return nil, nil, fmt.Errorf("failed to replace chapters: %w", err)
	}
	if err := s.projectRepo.UpdateOutline(ctx, projectID, outlineDoc); err != nil {
		return nil, nil, fmt.Errorf("failed to store outline: %w", err)
	}

	s.cacheOutline(ctx, projectID, outlineDoc)

	log.Info().
		Str("project_id", projectID).
		Int("chapters", len(chapters)).
		Msg("outline rebuilt")
	return outlineDoc, chapters, nil
}

func (s *service) cacheOutline(ctx context.Context, projectID string, outline *book.OutlineDocument) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.OutlineCacheKey(projectID), outline, cache.OutlineCacheTTL); err != nil {
		log.Warn().Err(err).Str("project_id", projectID).Msg("failed to cache outline")
	}
}

// GetOutline returns the project's current outline, reading through the
// cache. Returns ErrNotFound when no outline has been built yet.
func (s *service) GetOutline(ctx context.Context, projectID string) (*book.OutlineDocument, error) {
	if s.cache != nil {
		var outline book.OutlineDocument
		if err := s.cache.Get(ctx, cache.OutlineCacheKey(projectID), &outline); err == nil && len(outline.Chapters) > 0 {
			return &outline, nil
		}
	}

	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj.Outline == nil || len(proj.Outline.Chapters) == 0 {
		return nil, fmt.Errorf("%w: outline has not been built", ErrNotFound)
	}

	s.cacheOutline(ctx, projectID, proj.Outline)
	return proj.Outline, nil
}

func projectContext(proj *book.Project) booktools.ProjectContext {
	return booktools.ProjectContext{
		Title:           proj.Title,
		Subtitle:        proj.Subtitle,
		TargetAudience:  proj.TargetAudience,
		Tone:            proj.Tone,
		Language:        proj.Language,
		WordCountTarget: proj.WordCountTarget,
	}
}
