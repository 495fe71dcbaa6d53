package book

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Project is the root entity of the drafting workflow. It groups source
// documents and chapters under one book configuration and carries the
// outline document produced by the last successful outline build.
type Project struct {
	ID string `bson:"id" json:"id"` // project ID (UUID)

	UserID string `bson:"user_id,omitempty" json:"user_id,omitempty"`

	Title           string `bson:"title" json:"title"`
	Subtitle        string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	TargetAudience  string `bson:"target_audience,omitempty" json:"target_audience,omitempty"`
	Tone            string `bson:"tone,omitempty" json:"tone,omitempty"`
	Language        string `bson:"language" json:"language"` // defaults to "en"
	WordCountTarget int    `bson:"word_count_target,omitempty" json:"word_count_target,omitempty"`

	// Outline is the raw outline document of the last successful build.
	// It is the source of truth for chapter order/titles/summaries at
	// build time and is never reconciled afterwards.
	Outline *OutlineDocument `bson:"outline,omitempty" json:"outline,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// OutlineDocument is the persisted outline schema, stored verbatim as
// returned by the outline builder.
type OutlineDocument struct {
	Chapters []OutlineChapter `bson:"chapters" json:"chapters"`
}

// OutlineChapter is one chapter stub inside an outline document.
type OutlineChapter struct {
	Order   int    `bson:"order" json:"order"`
	Title   string `bson:"title" json:"title"`
	Summary string `bson:"summary" json:"summary"`
}

// Collection returns the collection name.
func (p *Project) Collection() string { return "projects" }

// EnsureIndexes creates and maintains indexes.
func (p *Project) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
