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

const eventCollection = "events"

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventCollection)}
}

type mongoEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Type      string             `bson:"type"`
	Location  string             `bson:"location,omitempty"`
	StartsAt  int64              `bson:"starts_at"`
	CreatedBy string             `bson:"created_by"`
	CreatedAt int64              `bson:"created_at"`
}

func (m mongoEvent) toDomain() *domain.ChoirEvent {
	return &domain.ChoirEvent{
		ID:        m.ID.Hex(),
		Title:     m.Title,
		Type:      domain.EventType(m.Type),
		Location:  m.Location,
		StartsAt:  unixToTime(m.StartsAt),
		CreatedBy: m.CreatedBy,
		CreatedAt: unixToTime(m.CreatedAt),
	}
}

func (r *EventRepository) Insert(ctx context.Context, e *domain.ChoirEvent) (*domain.ChoirEvent, error) {
	doc := mongoEvent{
		ID:        primitive.NewObjectID(),
		Title:     e.Title,
		Type:      string(e.Type),
		Location:  e.Location,
		StartsAt:  e.StartsAt.Unix(),
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.ChoirEvent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var m mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return m.toDomain(), nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*domain.ChoirEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"starts_at": bson.M{"$gte": from.Unix()}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.ChoirEvent
	for cur.Next(ctx) {
		var m mongoEvent
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, m.toDomain())
	}
	return events, cur.Err()
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "starts_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
