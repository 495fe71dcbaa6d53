package transcription

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	modelbook "quill/internal/model/book"
	"quill/internal/pkg/booktools"
	bookservice "quill/internal/service/book"
	resourceservice "quill/internal/service/resource"
)

// Service turns uploaded audio into project source material.
type Service interface {
	// TranscribeToSource transcribes the audio resource and appends the
	// transcript to the project as a new source document.
	TranscribeToSource(ctx context.Context, req *TranscribeRequest) (*modelbook.SourceDocument, error)
}

// TranscribeRequest names the audio resource and the target project.
type TranscribeRequest struct {
	ResourceID string
	ProjectID  string
	Label      string
}

type service struct {
	resources   resourceservice.Service
	books       bookservice.Service
	transcriber booktools.Transcriber
}

// NewService creates the transcription service.
func NewService(resources resourceservice.Service, books bookservice.Service, transcriber booktools.Transcriber) Service {
	return &service{
		resources:   resources,
		books:       books,
		transcriber: transcriber,
	}
}

func (s *service) TranscribeToSource(ctx context.Context, req *TranscribeRequest) (*modelbook.SourceDocument, error) {
	// Both references are checked before the remote call so a bad id
	// never costs a transcription invocation.
	if _, err := s.books.GetProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	res, body, err := s.resources.Download(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	transcript, err := s.transcriber.Transcribe(ctx, body, res.Name)
	if err != nil {
		log.Error().Err(err).
			Str("resource_id", req.ResourceID).
			Str("project_id", req.ProjectID).
			Msg("transcription failed")
		return nil, fmt.Errorf("%w: %v", bookservice.ErrUpstream, err)
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = res.Name
	}

	doc, err := s.books.AddSource(ctx, req.ProjectID, &bookservice.AddSourceRequest{
		Label: label,
		Text:  transcript,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("resource_id", req.ResourceID).
		Str("project_id", req.ProjectID).
		Str("source_id", doc.ID).
		Msg("audio transcribed to source document")
	return doc, nil
}
