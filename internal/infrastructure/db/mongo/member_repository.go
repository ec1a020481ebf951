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

const memberCollection = "members"

type MemberRepository struct {
	coll *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{coll: db.Collection(memberCollection)}
}

type mongoMember struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (m mongoMember) toDomain() *domain.Member {
	return &domain.Member{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    unixToTime(m.CreatedAt),
		UpdatedAt:    unixToTime(m.UpdatedAt),
	}
}

func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	doc := mongoMember{
		ID:           primitive.NewObjectID(),
		Name:         member.Name,
		Email:        member.Email,
		Phone:        member.Phone,
		PasswordHash: member.PasswordHash,
		Role:         string(member.Role),
		IsActive:     member.IsActive,
		CreatedAt:    member.CreatedAt.Unix(),
		UpdatedAt:    member.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMemberExists
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MemberRepository) FindByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *MemberRepository) findOne(ctx context.Context, filter bson.M) (*domain.Member, error) {
	var m mongoMember
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return m.toDomain(), nil
}

func (r *MemberRepository) FindByRole(ctx context.Context, role domain.Role, activeOnly bool) ([]*domain.Member, error) {
	filter := bson.M{"role": string(role)}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *MemberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	return r.findMany(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *MemberRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Member, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer cur.Close(ctx)

	var members []*domain.Member
	for cur.Next(ctx) {
		var m mongoMember
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode member: %w", err)
		}
		members = append(members, m.toDomain())
	}
	return members, cur.Err()
}

func (r *MemberRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return r.updateOne(ctx, id, bson.M{"role": string(role)})
}

func (r *MemberRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.updateOne(ctx, id, bson.M{"is_active": active})
}

func (r *MemberRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMemberNotFound
	}
	set["updated_at"] = time.Now().UTC().Unix()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// EnsureIndexes creates the unique lookup indexes for members. Email and
// phone use partial filters so absent values do not collide.
func (r *MemberRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
		{
			Keys: bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"phone": bson.M{"$type": "string"}}),
		},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
