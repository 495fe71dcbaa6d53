package resource

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/resource"
	bookrepo "quill/internal/repository/book"
)

// ResourceRepository is the uploaded-file metadata store interface used by
// the service layer.
type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	FindByID(ctx context.Context, id string) (*resource.Resource, error)
}

// ResourceRepo is the MongoDB-backed resource store.
type ResourceRepo struct {
	coll *mongo.Collection
}

// NewResourceRepo creates a resource repository.
func NewResourceRepo(db *mongo.Database) *ResourceRepo {
	var r resource.Resource
	return &ResourceRepo{coll: db.Collection(r.Collection())}
}

// Create inserts a resource record.
func (r *ResourceRepo) Create(ctx context.Context, res *resource.Resource) error {
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, res)
	return err
}

// FindByID looks up a resource by ID.
func (r *ResourceRepo) FindByID(ctx context.Context, id string) (*resource.Resource, error) {
	var res resource.Resource
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookrepo.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}
