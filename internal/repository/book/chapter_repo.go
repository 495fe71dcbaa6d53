package book

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quill/internal/model/book"
)

// ChapterRepository is the chapter store interface used by the service
// layer. Every listing is sorted by ascending chapter order.
type ChapterRepository interface {
	FindByID(ctx context.Context, id string) (*book.Chapter, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*book.Chapter, error)
	// FindFirstPending returns the chapter with the smallest order whose
	// draft is absent or empty, or ErrNotFound when every chapter is
	// drafted.
	FindFirstPending(ctx context.Context, projectID string) (*book.Chapter, error)
	// ReplaceForProject discards all chapters of the project and inserts
	// the given set. Used only by the outline builder.
	ReplaceForProject(ctx context.Context, projectID string, chapters []*book.Chapter) error
	UpdateDraft(ctx context.Context, chapterID string, draft string) error
	DeleteByProjectID(ctx context.Context, projectID string) error
}

// ChapterRepo is the MongoDB-backed chapter store.
type ChapterRepo struct {
	coll *mongo.Collection
}

// NewChapterRepo creates a chapter repository.
func NewChapterRepo(db *mongo.Database) *ChapterRepo {
	var c book.Chapter
	return &ChapterRepo{coll: db.Collection(c.Collection())}
}

// FindByID looks up a chapter by ID.
func (r *ChapterRepo) FindByID(ctx context.Context, id string) (*book.Chapter, error) {
	var c book.Chapter
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByProjectID returns the project's chapters sorted by ascending order.
func (r *ChapterRepo) FindByProjectID(ctx context.Context, projectID string) ([]*book.Chapter, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cur, err := r.coll.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var chapters []*book.Chapter
	if err := cur.All(ctx, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// FindFirstPending selects the lowest-order chapter still lacking a draft.
func (r *ChapterRepo) FindFirstPending(ctx context.Context, projectID string) (*book.Chapter, error) {
	filter := bson.M{
		"project_id": projectID,
		"$or": bson.A{
			bson.M{"draft": bson.M{"$exists": false}},
			bson.M{"draft": ""},
		},
	}
	opts := options.FindOne().SetSort(bson.M{"order": 1})

	var c book.Chapter
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ReplaceForProject discards the project's chapter set and inserts the new
// stubs in one pass. Callers must have finished generation and validation
// before invoking it; this is the first mutation of an outline build.
func (r *ChapterRepo) ReplaceForProject(ctx context.Context, projectID string, chapters []*book.Chapter) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"project_id": projectID}); err != nil {
		return err
	}
	if len(chapters) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(chapters))
	for i, c := range chapters {
		c.CreatedAt = now
		c.UpdatedAt = now
		docs[i] = c
	}
	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// UpdateDraft writes the generated draft text. Only called after the remote
// generation call has succeeded.
func (r *ChapterRepo) UpdateDraft(ctx context.Context, chapterID string, draft string) error {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"id": chapterID},
		bson.M{"$set": bson.M{
			"draft":      draft,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByProjectID removes all chapters of a project (project deletion
// cascade).
func (r *ChapterRepo) DeleteByProjectID(ctx context.Context, projectID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}
