package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/facilityops/access-system/internal/core/domain"
)

const collectionUsers = "users"

// ProfileRepository implements ports.ProfileRepository on the users
// collection. All writes are single-document and therefore atomic.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionUsers)}
}

func (r *ProfileRepository) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.UserProfile
	err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Set writes fields on the profile document. merge=true upserts and leaves
// unrelated fields untouched; merge=false replaces the document.
func (r *ProfileRepository) Set(ctx context.Context, uid string, fields map[string]any, merge bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if merge {
		_, err := r.col.UpdateOne(ctx,
			bson.M{"_id": uid},
			bson.M{"$set": bson.M(fields)},
			options.Update().SetUpsert(true),
		)
		return err
	}

	doc := bson.M{"_id": uid}
	for k, v := range fields {
		doc[k] = v
	}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": uid}, doc, options.Replace().SetUpsert(true))
	return err
}

// Update applies a field-level partial update to an existing profile.
func (r *ProfileRepository) Update(ctx context.Context, uid string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
