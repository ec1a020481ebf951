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

const notificationCollection = "notifications"

type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(notificationCollection)}
}

type mongoNotification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	RecipientID string             `bson:"recipient_id"`
	Title       string             `bson:"title"`
	Message     string             `bson:"message"`
	RelatedID   string             `bson:"related_id,omitempty"`
	IsRead      bool               `bson:"is_read"`
	CreatedAt   int64              `bson:"created_at"`
}

func (m mongoNotification) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:          m.ID.Hex(),
		RecipientID: m.RecipientID,
		Title:       m.Title,
		Message:     m.Message,
		RelatedID:   m.RelatedID,
		IsRead:      m.IsRead,
		CreatedAt:   unixToTime(m.CreatedAt),
	}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	doc := mongoNotification{
		ID:          primitive.NewObjectID(),
		RecipientID: n.RecipientID,
		Title:       n.Title,
		Message:     n.Message,
		RelatedID:   n.RelatedID,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]*domain.Notification, error) {
	filter := bson.M{"recipient_id": recipientID}
	if unreadOnly {
		filter["is_read"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var notifications []*domain.Notification
	for cur.Next(ctx) {
		var m mongoNotification
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		notifications = append(notifications, m.toDomain())
	}
	return notifications, cur.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "is_read", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
