package resource

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Resource records an uploaded file (audio source material or an exported
// ebook). The actual bytes live in the storage backend under StorageKey;
// this entity only tracks metadata.
type Resource struct {
	ID     string `bson:"id" json:"id"` // resource ID (UUID)
	UserID string `bson:"user_id,omitempty" json:"user_id,omitempty"`

	Name string `bson:"name" json:"name"` // original file name
	Ext  string `bson:"ext" json:"ext"`   // lowercased extension with dot (.mp3, .wav, .m4a)

	// Storage info
	StorageKey  string `bson:"storage_key" json:"storage_key"`
	StorageURL  string `bson:"storage_url,omitempty" json:"storage_url,omitempty"`
	StorageType string `bson:"storage_type" json:"storage_type"` // local/oss

	// File info
	FileSize    int64  `bson:"file_size" json:"file_size"`
	ContentType string `bson:"content_type" json:"content_type"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name.
func (r *Resource) Collection() string { return "resources" }

// EnsureIndexes creates and maintains indexes.
func (r *Resource) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(r.Collection())
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
