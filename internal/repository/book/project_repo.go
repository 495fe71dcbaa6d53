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

// ErrNotFound is returned when a referenced entity does not exist. Repos
// translate driver-level "no documents" errors so that services never
// depend on the MongoDB driver directly.
var ErrNotFound = errors.New("not found")

// ProjectRepository is the project store interface used by the service
// layer.
type ProjectRepository interface {
	Create(ctx context.Context, p *book.Project) error
	FindByID(ctx context.Context, id string) (*book.Project, error)
	List(ctx context.Context, limit int64) ([]*book.Project, error)
	UpdateOutline(ctx context.Context, id string, outline *book.OutlineDocument) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepo is the MongoDB-backed project store.
type ProjectRepo struct {
	coll *mongo.Collection
}

// NewProjectRepo creates a project repository.
func NewProjectRepo(db *mongo.Database) *ProjectRepo {
	var p book.Project
	return &ProjectRepo{coll: db.Collection(p.Collection())}
}

// Create inserts a project.
func (r *ProjectRepo) Create(ctx context.Context, p *book.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

// FindByID looks up a project by ID.
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*book.Project, error) {
	var p book.Project
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns projects ordered by creation time, newest first.
func (r *ProjectRepo) List(ctx context.Context, limit int64) ([]*book.Project, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []*book.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateOutline stores the outline document produced by the last
// successful outline build.
func (r *ProjectRepo) UpdateOutline(ctx context.Context, id string, outline *book.OutlineDocument) error {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"outline":    outline,
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

// Delete removes a project record. Cascading deletion of chapters and
// sources is orchestrated by the service layer.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
