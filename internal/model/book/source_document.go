package book

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SourceDocument is one block of raw input text attached to a project
// (a transcript, notes). Append-only; creation order determines the
// concatenation order used when building prompts.
type SourceDocument struct {
	ID string `bson:"id" json:"id"` // source document ID (UUID)

	ProjectID string `bson:"project_id" json:"project_id"`

	Label string `bson:"label,omitempty" json:"label,omitempty"`
	Text  string `bson:"text" json:"text"` // required, non-empty after trim

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name.
func (s *SourceDocument) Collection() string { return "source_documents" }

// EnsureIndexes creates and maintains indexes.
func (s *SourceDocument) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(s.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "project_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_project_created"),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
