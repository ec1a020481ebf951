package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/choralis/choir-api/internal/core/domain"
)

const claimCollection = "claims"

type ClaimRepository struct {
	coll *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{coll: db.Collection(claimCollection)}
}

type mongoClaim struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Reference     string             `bson:"reference"`
	SubmittedBy   string             `bson:"submitted_by"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Severity      string             `bson:"severity"`
	Status        string             `bson:"status"`
	IsAnonymous   bool               `bson:"is_anonymous"`
	AttachmentRef string             `bson:"attachment_ref,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (m mongoClaim) toDomain() *domain.Claim {
	return &domain.Claim{
		ID:            m.ID.Hex(),
		Reference:     m.Reference,
		SubmittedBy:   m.SubmittedBy,
		Title:         m.Title,
		Description:   m.Description,
		Severity:      domain.ClaimSeverity(m.Severity),
		Status:        domain.ClaimStatus(m.Status),
		IsAnonymous:   m.IsAnonymous,
		AttachmentRef: m.AttachmentRef,
		CreatedAt:     unixToTime(m.CreatedAt),
		UpdatedAt:     unixToTime(m.UpdatedAt),
	}
}

func (r *ClaimRepository) Insert(ctx context.Context, c *domain.Claim) (*domain.Claim, error) {
	doc := mongoClaim{
		ID:            primitive.NewObjectID(),
		Reference:     c.Reference,
		SubmittedBy:   c.SubmittedBy,
		Title:         c.Title,
		Description:   c.Description,
		Severity:      string(c.Severity),
		Status:        string(c.Status),
		IsAnonymous:   c.IsAnonymous,
		AttachmentRef: c.AttachmentRef,
		CreatedAt:     c.CreatedAt.Unix(),
		UpdatedAt:     c.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert claim: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*domain.Claim, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClaimNotFound
	}

	var m mongoClaim
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("find claim: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ClaimRepository) ListBySubmitter(ctx context.Context, memberID string) ([]*domain.Claim, error) {
	return r.findMany(ctx, bson.M{"submitted_by": memberID})
}

func (r *ClaimRepository) ListAll(ctx context.Context) ([]*domain.Claim, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *ClaimRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Claim, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer cur.Close(ctx)

	var claims []*domain.Claim
	for cur.Next(ctx) {
		var m mongoClaim
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode claim: %w", err)
		}
		claims = append(claims, m.toDomain())
	}
	return claims, cur.Err()
}

func (r *ClaimRepository) UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClaimNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClaimNotFound
	}
	return nil
}

func (r *ClaimRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "submitted_by", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
