package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/resource"
	"quill/internal/pkg/id"
	"quill/internal/pkg/storage"
	resourcerepo "quill/internal/repository/resource"
)

// ErrUnsupportedFormat: the uploaded file extension is not an accepted
// audio format.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// allowedAudioExts is the upload allow-list. Matching is on the file
// extension, lowercased.
var allowedAudioExts = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
}

// Service manages uploaded audio resources.
type Service interface {
	// UploadAudio validates and stores an audio file, returning its
	// resource record.
	UploadAudio(ctx context.Context, req *UploadAudioRequest) (*resource.Resource, error)
	GetResource(ctx context.Context, resourceID string) (*resource.Resource, error)
	// Download opens the stored audio for reading.
	Download(ctx context.Context, resourceID string) (*resource.Resource, io.ReadCloser, error)
}

// UploadAudioRequest carries one audio upload.
type UploadAudioRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
	UserID      string
}

type service struct {
	repo  resourcerepo.ResourceRepository
	store storage.Storage
}

// NewService creates the resource service.
func NewService(db *mongo.Database, store storage.Storage) Service {
	return &service{
		repo:  resourcerepo.NewResourceRepo(db),
		store: store,
	}
}

// newServiceWithRepo wires an explicit repository; used by tests.
func newServiceWithRepo(repo resourcerepo.ResourceRepository, store storage.Storage) *service {
	return &service{
		repo:  repo,
		store: store,
	}
}

func (s *service) UploadAudio(ctx context.Context, req *UploadAudioRequest) (*resource.Resource, error) {
	ext := strings.ToLower(filepath.Ext(req.FileName))
	if !allowedAudioExts[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	res := &resource.Resource{
		ID:          id.New(),
		UserID:      req.UserID,
		Name:        req.FileName,
		Ext:         ext,
		StorageType: s.store.Type(),
		FileSize:    req.Size,
		ContentType: req.ContentType,
	}
	res.StorageKey = fmt.Sprintf("audio/%s%s", res.ID, ext)

	url, err := s.store.Upload(ctx, res.StorageKey, req.Data, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio: %w", err)
	}
	res.StorageURL = url

	if err := s.repo.Create(ctx, res); err != nil {
		// Uploaded bytes without a record are unreachable; clean up.
		if delErr := s.store.Delete(ctx, res.StorageKey); delErr != nil {
			log.Warn().Err(delErr).Str("storage_key", res.StorageKey).Msg("failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	log.Info().
		Str("resource_id", res.ID).
		Str("name", res.Name).
		Int64("size", res.FileSize).
		Msg("audio uploaded")
	return res, nil
}

func (s *service) GetResource(ctx context.Context, resourceID string) (*resource.Resource, error) {
	return s.repo.FindByID(ctx, resourceID)
}

func (s *service) Download(ctx context.Context, resourceID string) (*resource.Resource, io.ReadCloser, error) {
	res, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.store.Download(ctx, res.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audio: %w", err)
	}
	return res, body, nil
}
