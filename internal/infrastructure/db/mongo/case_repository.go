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

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

const casesCollection = "cases"

type CaseRepository struct {
	coll *mongo.Collection
}

func NewCaseRepository(db *mongo.Database) *CaseRepository {
	return &CaseRepository{coll: db.Collection(casesCollection)}
}

type caseDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description,omitempty"`
	AssignedUserID string             `bson:"assigned_user_id,omitempty"`
	IsDeleted      bool               `bson:"is_deleted"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d caseDoc) toDomain() *domain.Case {
	return &domain.Case{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		Description:    d.Description,
		AssignedUserID: d.AssignedUserID,
		IsDeleted:      d.IsDeleted,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := caseDoc{
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert case: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CaseRepository) FindByID(ctx context.Context, id string) (*domain.Case, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCaseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc caseDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("find case: %w", err)
	}
	return doc.toDomain(), nil
}

// Assign sets the assignee in a single atomic update.
func (r *CaseRepository) Assign(ctx context.Context, caseID, userID string) (*domain.Case, error) {
	oid, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, domain.ErrCaseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc caseDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "is_deleted": false},
		bson.M{"$set": bson.M{"assigned_user_id": userID, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("assign case: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CaseRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCaseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": oid, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("soft delete case: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepository) FindAll(ctx context.Context) ([]*domain.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"is_deleted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer cursor.Close(ctx)

	var cases []*domain.Case
	for cursor.Next(ctx) {
		var doc caseDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode case: %w", err)
		}
		cases = append(cases, doc.toDomain())
	}
	return cases, cursor.Err()
}

func (r *CaseRepository) Stats(ctx context.Context) (ports.CaseStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var stats ports.CaseStats
	var err error
	if stats.Total, err = r.coll.CountDocuments(ctx, bson.M{"is_deleted": false}); err != nil {
		return stats, fmt.Errorf("count cases: %w", err)
	}
	unassigned := bson.M{
		"is_deleted": false,
		"$or": bson.A{
			bson.M{"assigned_user_id": ""},
			bson.M{"assigned_user_id": bson.M{"$exists": false}},
		},
	}
	if stats.Unassigned, err = r.coll.CountDocuments(ctx, unassigned); err != nil {
		return stats, fmt.Errorf("count unassigned cases: %w", err)
	}
	return stats, nil
}
