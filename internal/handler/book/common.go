package book

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	modelbook "quill/internal/model/book"
	httputil "quill/internal/pkg/http"
	bookservice "quill/internal/service/book"
)

// ErrorResponse is the shared error body.
type ErrorResponse = httputil.ErrorResponse

// ProjectInfo is the project DTO.
type ProjectInfo struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Subtitle        string       `json:"subtitle,omitempty"`
	TargetAudience  string       `json:"target_audience,omitempty"`
	Tone            string       `json:"tone,omitempty"`
	Language        string       `json:"language,omitempty"`
	WordCountTarget int          `json:"word_count_target,omitempty"`
	Outline         *OutlineInfo `json:"outline,omitempty"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

// OutlineInfo is the outline DTO.
type OutlineInfo struct {
	Chapters []OutlineChapterInfo `json:"chapters"`
}

// OutlineChapterInfo is one outline entry.
type OutlineChapterInfo struct {
	Order   int    `json:"order"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// ChapterInfo is the chapter DTO.
type ChapterInfo struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Order     int    `json:"order"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Draft     string `json:"draft,omitempty"`
	Drafted   bool   `json:"drafted"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SourceInfo is the source document DTO.
type SourceInfo struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Label     string `json:"label,omitempty"`
	TextLen   int    `json:"text_len"`
	Text      string `json:"text,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toProjectInfo(p *modelbook.Project) ProjectInfo {
	return ProjectInfo{
		ID:              p.ID,
		Title:           p.Title,
		Subtitle:        p.Subtitle,
		TargetAudience:  p.TargetAudience,
		Tone:            p.Tone,
		Language:        p.Language,
		WordCountTarget: p.WordCountTarget,
		Outline:         toOutlineInfo(p.Outline),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

func toProjectInfoList(projects []*modelbook.Project) []ProjectInfo {
	list := make([]ProjectInfo, len(projects))
	for i, p := range projects {
		list[i] = toProjectInfo(p)
	}
	return list
}

func toOutlineInfo(o *modelbook.OutlineDocument) *OutlineInfo {
	if o == nil {
		return nil
	}
	info := &OutlineInfo{Chapters: make([]OutlineChapterInfo, len(o.Chapters))}
	for i, ch := range o.Chapters {
		info.Chapters[i] = OutlineChapterInfo{
			Order:   ch.Order,
			Title:   ch.Title,
			Summary: ch.Summary,
		}
	}
	return info
}

func toChapterInfo(ch *modelbook.Chapter, includeDraft bool) ChapterInfo {
	info := ChapterInfo{
		ID:        ch.ID,
		ProjectID: ch.ProjectID,
		Order:     ch.Order,
		Title:     ch.Title,
		Summary:   ch.Summary,
		Drafted:   ch.Drafted(),
		CreatedAt: ch.CreatedAt.Format(time.RFC3339),
		UpdatedAt: ch.UpdatedAt.Format(time.RFC3339),
	}
	if includeDraft {
		info.Draft = ch.Draft
	}
	return info
}

func toChapterInfoList(chapters []*modelbook.Chapter, includeDraft bool) []ChapterInfo {
	list := make([]ChapterInfo, len(chapters))
	for i, ch := range chapters {
		list[i] = toChapterInfo(ch, includeDraft)
	}
	return list
}

func toSourceInfo(doc *modelbook.SourceDocument, includeText bool) SourceInfo {
	info := SourceInfo{
		ID:        doc.ID,
		ProjectID: doc.ProjectID,
		Label:     doc.Label,
		TextLen:   len(doc.Text),
		CreatedAt: doc.CreatedAt.Format(time.RFC3339),
	}
	if includeText {
		info.Text = doc.Text
	}
	return info
}

func toSourceInfoList(docs []*modelbook.SourceDocument, includeText bool) []SourceInfo {
	list := make([]SourceInfo, len(docs))
	for i, doc := range docs {
		list[i] = toSourceInfo(doc, includeText)
	}
	return list
}

// writeServiceError maps workflow errors to HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookservice.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40401,
			Message: "Resource not found",
			Detail:  err.Error(),
		})
	case errors.Is(err, bookservice.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: "Validation failed",
			Detail:  err.Error(),
		})
	case errors.Is(err, bookservice.ErrNoSources):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40003,
			Message: "Project has no source documents",
			Detail:  err.Error(),
		})
	case errors.Is(err, bookservice.ErrUpstream):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    50201,
			Message: "Upstream generation service failed",
			Detail:  err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "Internal server error",
			Detail:  err.Error(),
		})
	}
}
