package book

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"quill/internal/model/book"
)

// ExportStore is the slice of the storage backend the exporter needs.
type ExportStore interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)
}

// ErrExportDisabled: no storage backend was configured for exports.
var ErrExportDisabled = errors.New("export storage is not configured")

const exportURLExpiry = 24 * time.Hour

// ExportResult describes a stored ebook export.
type ExportResult struct {
	StorageKey  string `json:"storage_key"`
	DownloadURL string `json:"download_url"`
	Chapters    int    `json:"chapters"`
	Drafted     int    `json:"drafted"`
}

// ExportEbook renders the project as a Markdown document and uploads it
// to the storage backend. Chapters without a draft are included as
// outline stubs so the export always reflects the full book structure.
func (s *service) ExportEbook(ctx context.Context, projectID string) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	chapters, err := s.chapterRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chapters: %w", err)
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: project has no chapters to export", ErrValidation)
	}

	content, drafted := renderMarkdown(proj, chapters)

	key := fmt.Sprintf("exports/%s/%s.md", projectID, time.Now().UTC().Format("20060102-150405"))
	if _, err := s.store.Upload(ctx, key, strings.NewReader(content), "text/markdown"); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.store.GetPresignedDownloadURL(ctx, key, exportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign export URL: %w", err)
	}

	log.Info().
		Str("project_id", projectID).
		Str("storage_key", key).
		Int("chapters", len(chapters)).
		Int("drafted", drafted).
		Msg("ebook exported")

	return &ExportResult{
		StorageKey:  key,
		DownloadURL: url,
		Chapters:    len(chapters),
		Drafted:     drafted,
	}, nil
}

func renderMarkdown(proj *book.Project, chapters []*book.Chapter) (string, int) {
	var b strings.Builder
	drafted := 0

	b.WriteString("# " + proj.Title + "\n")
	if proj.Subtitle != "" {
		b.WriteString("\n*" + proj.Subtitle + "*\n")
	}

	for _, ch := range chapters {
		fmt.Fprintf(&b, "\n## Chapter %d: %s\n\n", ch.Order, ch.Title)
		if ch.Drafted() {
			drafted++
			b.WriteString(ch.Draft)
			b.WriteString("\n")
			continue
		}
		if ch.Summary != "" {
			b.WriteString("> " + ch.Summary + "\n")
		}
		b.WriteString("\n*(draft pending)*\n")
	}

	return b.String(), drafted
}
