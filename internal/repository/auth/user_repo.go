package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/auth"
	bookrepo "quill/internal/repository/book"
)

// UserRepository is the user store interface used by the auth service.
type UserRepository interface {
	Create(ctx context.Context, u *auth.User) error
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// UserRepo is the MongoDB-backed user store.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *mongo.Database) *UserRepo {
	var u auth.User
	return &UserRepo{coll: db.Collection(u.Collection())}
}

// Create inserts a user.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

// FindByEmail looks up a user by email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookrepo.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID looks up a user by ID.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	var u auth.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookrepo.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
