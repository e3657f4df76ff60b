package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revit/marketplace/internal/core/domain"
)

// ActivityRepository stores job events in the job_activity audit collection.
type ActivityRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewActivityRepository(db *mongo.Database, timeout time.Duration) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity), timeout: timeout}
}

func (r *ActivityRepository) Insert(ctx context.Context, event *domain.JobEvent) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	event.ID = primitive.NewObjectID().Hex()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, event)
	return storeErr("insert activity", err)
}

func (r *ActivityRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.JobEvent, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"job_id": jobID}, opts)
	if err != nil {
		return nil, storeErr("list activity", err)
	}
	events := []*domain.JobEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, storeErr("decode activity", err)
	}
	return events, nil
}
