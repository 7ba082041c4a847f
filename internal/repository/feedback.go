package repository

import (
	"context"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minjoonc/portfolio-backend/internal/models"
)

// ListCap is the maximum number of records returned for a single slug.
const ListCap = 150

const collectionName = "feedback"

// FeedbackRepo performs all reads and writes against the feedback collection.
// It holds the injected database handle; no package-level state.
type FeedbackRepo struct {
	db      *mongo.Database
	indexed atomic.Bool
}

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

func (r *FeedbackRepo) collection() *mongo.Collection {
	return r.db.Collection(collectionName)
}

// EnsureIndexes creates the compound index on (slug, created_at descending)
// that backs ListBySlug. Create-if-absent, safe to call repeatedly; a benign
// duplicate-create race between two first queries is acceptable.
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	if r.indexed.Load() {
		return nil
	}

	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "slug", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_slug_created_at"),
	}

	if _, err := r.collection().Indexes().CreateOne(ctx, model); err != nil {
		return err
	}
	r.indexed.Store(true)
	return nil
}

// ListBySlug returns feedback for one page, newest first, capped at ListCap.
// Callers must reject an empty slug before reaching the repository.
func (r *FeedbackRepo) ListBySlug(ctx context.Context, slug string) ([]models.Feedback, error) {
	if err := r.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(ListCap)

	cursor, err := r.collection().Find(ctx, bson.M{"slug": slug}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedbacks := make([]models.Feedback, 0)
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// Insert stores a new record and returns it with the generated id. CreatedAt
// is always stamped here with server time; a caller-supplied value is
// overwritten.
func (r *FeedbackRepo) Insert(ctx context.Context, fb models.Feedback) (models.Feedback, error) {
	fb.ID = primitive.NewObjectID()
	fb.CreatedAt = time.Now().UTC()

	if _, err := r.collection().InsertOne(ctx, fb); err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

// DeleteByID removes one record. Returns false when no record matched;
// the handler distinguishes that from a malformed id, which never gets here.
func (r *FeedbackRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
