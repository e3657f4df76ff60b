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

type ApplicationRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewApplicationRepository(db *mongo.Database, timeout time.Duration) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications), timeout: timeout}
}

// Create inserts a new application. The unique (job_id, professional_id)
// index turns a second insert for the same pair into ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	a.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		a.ID = ""
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateApplication
		}
		return storeErr("insert application", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var a domain.Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, storeErr("find application", err)
	}
	return &a, nil
}

// List returns applications matching filter, newest first.
func (r *ApplicationRepository) List(ctx context.Context, f ports.ApplicationFilter) ([]*domain.Application, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if f.JobID != "" {
		filter["job_id"] = f.JobID
	}
	if f.ProfessionalID != "" {
		filter["professional_id"] = f.ProfessionalID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list applications", err)
	}
	apps := []*domain.Application{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, storeErr("decode applications", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, at time.Time) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": at}},
	)
	if err != nil {
		return storeErr("update application", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return storeErr("count application", err)
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return fmt.Errorf("update application: %w (application is no longer %s)", domain.ErrInvalidTransition, from)
}

func (r *ApplicationRepository) RejectPending(ctx context.Context, jobID, exceptID string, at time.Time) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{
		"job_id": jobID,
		"_id":    bson.M{"$ne": exceptID},
		"status": domain.ApplicationPending,
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, storeErr("find pending applications", err)
	}
	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, storeErr("decode pending applications", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	_, err = r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "status": domain.ApplicationPending},
		bson.M{"$set": bson.M{"status": domain.ApplicationRejected, "updated_at": at}},
	)
	if err != nil {
		return nil, storeErr("reject pending applications", err)
	}
	return ids, nil
}
