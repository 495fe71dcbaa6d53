package book

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Chapter is one ordered chapter record of a project. The full chapter set
// is created by a single outline build; rebuilding the outline discards and
// replaces all of a project's chapters. Draft moves from empty to non-empty
// exactly once per successful draft generation.
type Chapter struct {
	ID string `bson:"id" json:"id"` // chapter ID (UUID)

	ProjectID string `bson:"project_id" json:"project_id"`

	Order   int    `bson:"order" json:"order"` // 1-based, unique per project
	Title   string `bson:"title" json:"title"`
	Summary string `bson:"summary,omitempty" json:"summary,omitempty"`

	// Draft is the generated narrative text. Empty means not yet drafted.
	Draft string `bson:"draft,omitempty" json:"draft,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Drafted reports whether the chapter already has draft content.
func (c *Chapter) Drafted() bool { return c.Draft != "" }

// Collection returns the collection name.
func (c *Chapter) Collection() string { return "chapters" }

// EnsureIndexes creates and maintains indexes.
func (c *Chapter) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "project_id", Value: 1},
				{Key: "order", Value: 1},
			},
			Options: options.Index().SetName("uniq_project_order").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
