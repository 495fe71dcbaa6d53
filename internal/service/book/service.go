package book

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/book"
	"quill/internal/pkg/booktools"
	"quill/internal/pkg/cache"
	bookrepo "quill/internal/repository/book"
)

// Error kinds surfaced by the drafting workflow. Handlers map these to
// HTTP statuses with errors.Is; everything else is an internal error.
var (
	// ErrNotFound: a referenced project or chapter does not exist.
	// Checked before any remote call so a bad id never burns an
	// external invocation.
	ErrNotFound = bookrepo.ErrNotFound

	// ErrValidation: the request itself is invalid (missing field,
	// empty text). Rejected before any external call or mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNoSources: outline build requested for a project without any
	// source documents.
	ErrNoSources = errors.New("project has no source documents")

	// ErrUpstream: the remote generation or transcription call failed,
	// or returned content violating the required schema. State is left
	// exactly as it was before the call.
	ErrUpstream = errors.New("upstream service failed")
)

// Service exposes the ebook drafting workflow: project and source
// management, outline building, and chapter draft generation.
type Service interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*book.Project, error)
	GetProject(ctx context.Context, projectID string) (*book.Project, error)
	ListProjects(ctx context.Context) ([]*book.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	AddSource(ctx context.Context, projectID string, req *AddSourceRequest) (*book.SourceDocument, error)
	ListSources(ctx context.Context, projectID string) ([]*book.SourceDocument, error)

	// BuildOutline regenerates the project's outline and replaces its
	// whole chapter set. Destructive: previous chapters and their drafts
	// are discarded. On any failure nothing is mutated.
	BuildOutline(ctx context.Context, projectID string) (*book.OutlineDocument, []*book.Chapter, error)

	// GetOutline returns the current outline, reading through the cache.
	GetOutline(ctx context.Context, projectID string) (*book.OutlineDocument, error)

	// GenerateChapterDraft fills in the draft of one specific chapter.
	GenerateChapterDraft(ctx context.Context, chapterID string) (*book.Chapter, error)

	// GenerateNextDraft drafts the lowest-order chapter still lacking
	// draft text. When every chapter is drafted it returns (nil, true,
	// nil) without touching anything.
	GenerateNextDraft(ctx context.Context, projectID string) (*book.Chapter, bool, error)

	ListChapters(ctx context.Context, projectID string) ([]*book.Chapter, error)
	GetChapter(ctx context.Context, chapterID string) (*book.Chapter, error)

	// ExportEbook assembles the drafted chapters into a Markdown
	// document, stores it, and returns a download link.
	ExportEbook(ctx context.Context, projectID string) (*ExportResult, error)
}

// service is the production implementation.
type service struct {
	projectRepo bookrepo.ProjectRepository
	chapterRepo bookrepo.ChapterRepository
	sourceRepo  bookrepo.SourceRepository

	outlineBuilder *booktools.OutlineBuilder
	draftGenerator *booktools.DraftGenerator

	store ExportStore       // nil disables export
	cache *cache.RedisCache // nil disables outline caching

	locks projectLocks
}

// Options carries the injectable collaborators of the book service.
type Options struct {
	Generator booktools.TextGenerator
	// SourceCharBudget caps prompt source text; 0 means the default.
	SourceCharBudget int
	// Store receives exported ebooks; nil disables the export operation.
	Store ExportStore
	// Cache holds outline documents; nil disables caching.
	Cache *cache.RedisCache
}

// NewService creates the book service. Repositories are created
// internally from db; remote collaborators come from opts.
func NewService(db *mongo.Database, opts Options) Service {
	return &service{
		projectRepo:    bookrepo.NewProjectRepo(db),
		chapterRepo:    bookrepo.NewChapterRepo(db),
		sourceRepo:     bookrepo.NewSourceRepo(db),
		outlineBuilder: booktools.NewOutlineBuilder(opts.Generator, opts.SourceCharBudget),
		draftGenerator: booktools.NewDraftGenerator(opts.Generator, opts.SourceCharBudget),
		store:          opts.Store,
		cache:          opts.Cache,
		locks:          projectLocks{locks: map[string]*sync.Mutex{}},
	}
}

// newServiceWithRepos wires explicit repositories; used by tests.
func newServiceWithRepos(
	projectRepo bookrepo.ProjectRepository,
	chapterRepo bookrepo.ChapterRepository,
	sourceRepo bookrepo.SourceRepository,
	opts Options,
) *service {
	return &service{
		projectRepo:    projectRepo,
		chapterRepo:    chapterRepo,
		sourceRepo:     sourceRepo,
		outlineBuilder: booktools.NewOutlineBuilder(opts.Generator, opts.SourceCharBudget),
		draftGenerator: booktools.NewDraftGenerator(opts.Generator, opts.SourceCharBudget),
		store:          opts.Store,
		cache:          opts.Cache,
		locks:          projectLocks{locks: map[string]*sync.Mutex{}},
	}
}

// projectLocks serializes outline builds and draft writes per project.
// The reference behavior lets concurrent builds race last-writer-wins;
// a per-project mutex is the chosen hardening measure.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (p *projectLocks) lock(projectID string) *sync.Mutex {
	p.mu.Lock()
	m, ok := p.locks[projectID]
	if !ok {
		m = &sync.Mutex{}
		p.locks[projectID] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m
}
