package book

import (
	"context"
	"sort"

	modelbook "quill/internal/model/book"
	bookrepo "quill/internal/repository/book"
)

// In-memory repositories for workflow tests. They mirror the sorting
// contracts of the MongoDB implementations.

type fakeProjectRepo struct {
	projects         map[string]*modelbook.Project
	updateOutlineErr error
	outlineUpdates   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*modelbook.Project{}}
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *modelbook.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*modelbook.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, bookrepo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, limit int64) ([]*modelbook.Project, error) {
	list := make([]*modelbook.Project, 0, len(r.projects))
	for _, p := range r.projects {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if limit > 0 && int64(len(list)) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeProjectRepo) UpdateOutline(ctx context.Context, id string, outline *modelbook.OutlineDocument) error {
	if r.updateOutlineErr != nil {
		return r.updateOutlineErr
	}
	p, ok := r.projects[id]
	if !ok {
		return bookrepo.ErrNotFound
	}
	p.Outline = outline
	r.outlineUpdates++
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return bookrepo.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

type fakeChapterRepo struct {
	chapters     map[string]*modelbook.Chapter
	replaceCalls int
	draftWrites  int
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{chapters: map[string]*modelbook.Chapter{}}
}

func (r *fakeChapterRepo) FindByID(ctx context.Context, id string) (*modelbook.Chapter, error) {
	c, ok := r.chapters[id]
	if !ok {
		return nil, bookrepo.ErrNotFound
	}
	return c, nil
}

func (r *fakeChapterRepo) byProject(projectID string) []*modelbook.Chapter {
	var list []*modelbook.Chapter
	for _, c := range r.chapters {
		if c.ProjectID == projectID {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Order < list[j].Order })
	return list
}

func (r *fakeChapterRepo) FindByProjectID(ctx context.Context, projectID string) ([]*modelbook.Chapter, error) {
	return r.byProject(projectID), nil
}

func (r *fakeChapterRepo) FindFirstPending(ctx context.Context, projectID string) (*modelbook.Chapter, error) {
	for _, c := range r.byProject(projectID) {
		if !c.Drafted() {
			return c, nil
		}
	}
	return nil, bookrepo.ErrNotFound
}

func (r *fakeChapterRepo) ReplaceForProject(ctx context.Context, projectID string, chapters []*modelbook.Chapter) error {
	r.replaceCalls++
	for id, c := range r.chapters {
		if c.ProjectID == projectID {
			delete(r.chapters, id)
		}
	}
	for _, c := range chapters {
		r.chapters[c.ID] = c
	}
	return nil
}

func (r *fakeChapterRepo) UpdateDraft(ctx context.Context, chapterID string, draft string) error {
	c, ok := r.chapters[chapterID]
	if !ok {
		return bookrepo.ErrNotFound
	}
	c.Draft = draft
	r.draftWrites++
	return nil
}

func (r *fakeChapterRepo) DeleteByProjectID(ctx context.Context, projectID string) error {
	for id, c := range r.chapters {
		if c.ProjectID == projectID {
			delete(r.chapters, id)
		}
	}
	return nil
}

type fakeSourceRepo struct {
	sources []*modelbook.SourceDocument
}

func newFakeSourceRepo() *fakeSourceRepo {
	return &fakeSourceRepo{}
}

func (r *fakeSourceRepo) Create(ctx context.Context, s *modelbook.SourceDocument) error {
	r.sources = append(r.sources, s)
	return nil
}

func (r *fakeSourceRepo) FindByProjectID(ctx context.Context, projectID string) ([]*modelbook.SourceDocument, error) {
	var list []*modelbook.SourceDocument
	for _, s := range r.sources {
		if s.ProjectID == projectID {
			list = append(list, s)
		}
	}
	return list, nil
}

func (r *fakeSourceRepo) DeleteByProjectID(ctx context.Context, projectID string) error {
	kept := r.sources[:0]
	for _, s := range r.sources {
		if s.ProjectID != projectID {
			kept = append(kept, s)
		}
	}
	r.sources = kept
	return nil
}

// fakeGenerator returns canned responses, one per call.
type fakeGenerator struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	idx := g.calls - 1
	if idx >= len(g.responses) {
		idx = len(g.responses) - 1
	}
	return g.responses[idx], nil
}

// testFixture bundles a service with its fakes.
type testFixture struct {
	svc      *service
	projects *fakeProjectRepo
	chapters *fakeChapterRepo
	sources  *fakeSourceRepo
	gen      *fakeGenerator
}

func newTestFixture(gen *fakeGenerator) *testFixture {
	projects := newFakeProjectRepo()
	chapters := newFakeChapterRepo()
	sources := newFakeSourceRepo()
	svc := newServiceWithRepos(projects, chapters, sources, Options{Generator: gen})
	return &testFixture{
		svc:      svc,
		projects: projects,
		chapters: chapters,
		sources:  sources,
		gen:      gen,
	}
}

func (f *testFixture) seedProject(id, title string) *modelbook.Project {
	p := &modelbook.Project{ID: id, Title: title}
	f.projects.projects[id] = p
	return p
}

func (f *testFixture) seedSource(projectID, text string) {
	f.sources.sources = append(f.sources.sources, &modelbook.SourceDocument{
		ID:        "src-" + text,
		ProjectID: projectID,
		Text:      text,
	})
}

func (f *testFixture) seedChapter(id, projectID string, order int, title, draft string) *modelbook.Chapter {
	c := &modelbook.Chapter{
		ID:        id,
		ProjectID: projectID,
		Order:     order,
		Title:     title,
		Draft:     draft,
	}
	f.chapters.chapters[id] = c
	return c
}
