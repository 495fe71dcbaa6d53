package book

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quill/internal/model/book"
)

// SourceRepository is the source document store interface used by the
// service layer. Listings are sorted by creation time, oldest first, which
// fixes the prompt concatenation order.
type SourceRepository interface {
	Create(ctx context.Context, s *book.SourceDocument) error
	FindByProjectID(ctx context.Context, projectID string) ([]*book.SourceDocument, error)
	DeleteByProjectID(ctx context.Context, projectID string) error
}

// SourceRepo is the MongoDB-backed source document store.
type SourceRepo struct {
	coll *mongo.Collection
}

// NewSourceRepo creates a source document repository.
func NewSourceRepo(db *mongo.Database) *SourceRepo {
	var s book.SourceDocument
	return &SourceRepo{coll: db.Collection(s.Collection())}
}

// Create appends a source document.
func (r *SourceRepo) Create(ctx context.Context, s *book.SourceDocument) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

// FindByProjectID returns the project's source documents in creation order.
func (r *SourceRepo) FindByProjectID(ctx context.Context, projectID string) ([]*book.SourceDocument, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := r.coll.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sources []*book.SourceDocument
	if err := cur.All(ctx, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// DeleteByProjectID removes all source documents of a project (project
// deletion cascade).
func (r *SourceRepo) DeleteByProjectID(ctx context.Context, projectID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}
