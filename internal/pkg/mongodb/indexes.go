package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/auth"
	"quill/internal/model/book"
	"quill/internal/model/resource"
)

// EnsureIndexes creates the indexes of every registered model. Called once
// at application startup.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&book.Project{},
		&book.Chapter{},
		&book.SourceDocument{},
		&resource.Resource{},
		&auth.User{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
