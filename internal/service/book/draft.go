package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"quill/internal/model/book"
	"quill/internal/pkg/booktools"
	bookrepo "quill/internal/repository/book"
)

// GenerateChapterDraft produces draft text for the given chapter and
// persists it. The remote call happens first; the chapter is only
// written after the provider returned usable text, so a failed call
// leaves any existing draft as it was.
func (s *service) GenerateChapterDraft(ctx context.Context, chapterID string) (*book.Chapter, error) {
	ch, err := s.chapterRepo.FindByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	return s.draftChapter(ctx, ch)
}

// GenerateNextDraft drafts the lowest-order chapter that has no draft
// yet. The done flag is true when every chapter is already drafted; in
// that case nothing is generated or written.
func (s *service) GenerateNextDraft(ctx context.Context, projectID string) (*book.Chapter, bool, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, false, err
	}

	ch, err := s.chapterRepo.FindFirstPending(ctx, projectID)
	if err != nil {
		if errors.Is(err, bookrepo.ErrNotFound) {
			return nil, true, nil
		}
		return nil, false, err
	}

	drafted, err := s.draftChapter(ctx, ch)
	if err != nil {
		return nil, false, err
	}
	return drafted, false, nil
}

func (s *service) draftChapter(ctx context.Context, ch *book.Chapter) (*book.Chapter, error) {
	mu := s.locks.lock(ch.ProjectID)
	defer mu.Unlock()

	proj, err := s.projectRepo.FindByID(ctx, ch.ProjectID)
	if err != nil {
		return nil, err
	}

	texts, err := s.sourceTexts(ctx, ch.ProjectID)
	if err != nil {
		return nil, err
	}

	draft, err := s.draftGenerator.Generate(ctx, projectContext(proj), booktools.ChapterMeta{
		Order:   ch.Order,
		Title:   ch.Title,
		Summary: ch.Summary,
	}, texts)
	if err != nil {
		log.Error().Err(err).
			Str("project_id", ch.ProjectID).
			Str("chapter_id", ch.ID).
			Msg("draft generation failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := s.chapterRepo.UpdateDraft(ctx, ch.ID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	ch.Draft = draft
	log.Info().
		Str("project_id", ch.ProjectID).
		Str("chapter_id", ch.ID).
		Int("chapter_order", ch.Order).
		Msg("chapter drafted")
	return ch, nil
}

// ListChapters returns the project's chapters ordered by chapter order.
func (s *service) ListChapters(ctx context.Context, projectID string) ([]*book.Chapter, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.chapterRepo.FindByProjectID(ctx, projectID)
}

// GetChapter fetches one chapter by id.
func (s *service) GetChapter(ctx context.Context, chapterID string) (*book.Chapter, error) {
	return s.chapterRepo.FindByID(ctx, chapterID)
}
