package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

type JobRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewJobRepository(db *mongo.Database, timeout time.Duration) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs), timeout: timeout}
}

// Create inserts a new job document. The id is an ObjectID in hex form.
func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	j.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, j); err != nil {
		j.ID = ""
		return storeErr("insert job", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var j domain.Job
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&j)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, storeErr("find job", err)
	}
	return &j, nil
}

// List returns jobs matching filter, newest first.
func (r *JobRepository) List(ctx context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.ProfessionalID != "" {
		filter["professional_id"] = f.ProfessionalID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list jobs", err)
	}
	jobs := []*domain.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, storeErr("decode jobs", err)
	}
	return jobs, nil
}

// Apply is a compare-and-set on version (and status, when expected). The
// status, professional, history entry, version bump and updated_at are written
// by one findAndModify.
func (r *JobRepository) Apply(ctx context.Context, id string, c domain.JobChange) (*domain.Job, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	at := c.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	filter := bson.M{"_id": id, "version": c.ExpectedVersion}
	if c.ExpectedStatus != "" {
		filter["status"] = c.ExpectedStatus
	}
	set := bson.M{"status": c.Status, "updated_at": at}
	if c.ProfessionalID != "" {
		set["professional_id"] = c.ProfessionalID
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
		"$push": bson.M{"status_history": domain.JobStatusEntry{
			Status:    c.Status,
			Timestamp: at,
			ActorID:   c.ActorID,
			Notes:     c.Notes,
		}},
	}

	var j domain.Job
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&j)
	if err == nil {
		return &j, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storeErr("update job", err)
	}
	if err := r.exists(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("apply job change: %w", domain.ErrConcurrentUpdate)
}

// ReserveApplicationSlot bumps application_count only while the job is open.
// Inside a transaction this write also conflicts with a concurrent accept.
func (r *JobRepository) ReserveApplicationSlot(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.JobOpen},
		bson.M{"$inc": bson.M{"application_count": 1}},
	)
	if err != nil {
		return storeErr("reserve application slot", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if err := r.exists(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("reserve application slot: %w (job is not open)", domain.ErrInvalidTransition)
}

func (r *JobRepository) exists(ctx context.Context, id string) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return storeErr("count job", err)
	}
	if n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
