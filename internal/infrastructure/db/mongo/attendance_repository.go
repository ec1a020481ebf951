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
	"github.com/choralis/choir-api/internal/core/ports"
)

const attendanceCollection = "attendance"

type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(attendanceCollection)}
}

type mongoAttendance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	MemberID   string             `bson:"member_id"`
	EventID    string             `bson:"event_id"`
	EventType  string             `bson:"event_type"`
	EventDate  int64              `bson:"event_date"`
	SessionKey string             `bson:"session_key,omitempty"`
	Status     string             `bson:"status"`
	RecordedBy string             `bson:"recorded_by"`
	CreatedAt  int64              `bson:"created_at"`
}

func (m mongoAttendance) toDomain() *domain.AttendanceRecord {
	return &domain.AttendanceRecord{
		ID:         m.ID.Hex(),
		MemberID:   m.MemberID,
		EventID:    m.EventID,
		EventType:  domain.EventType(m.EventType),
		EventDate:  unixToTime(m.EventDate),
		SessionKey: m.SessionKey,
		Status:     domain.AttendanceStatus(m.Status),
		RecordedBy: m.RecordedBy,
		CreatedAt:  unixToTime(m.CreatedAt),
	}
}

func (r *AttendanceRepository) Insert(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	doc := mongoAttendance{
		ID:         primitive.NewObjectID(),
		MemberID:   rec.MemberID,
		EventID:    rec.EventID,
		EventType:  string(rec.EventType),
		EventDate:  rec.EventDate.Unix(),
		SessionKey: rec.SessionKey,
		Status:     string(rec.Status),
		RecordedBy: rec.RecordedBy,
		CreatedAt:  rec.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAttendanceExists
		}
		return nil, fmt.Errorf("insert attendance: %w", err)
	}
	return doc.toDomain(), nil
}

func keyFilter(key ports.AttendanceKey) bson.M {
	filter := bson.M{
		"member_id":  key.MemberID,
		"event_type": string(key.EventType),
	}
	if key.SessionKey != "" {
		filter["session_key"] = key.SessionKey
	}
	return filter
}

func (r *AttendanceRepository) QueryRecent(ctx context.Context, key ports.AttendanceKey, limit int) ([]*domain.AttendanceRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "event_date", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, keyFilter(key), opts)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	return r.decodeAll(ctx, cur)
}

func (r *AttendanceRepository) CountByStatus(ctx context.Context, key ports.AttendanceKey, status domain.AttendanceStatus) (int64, error) {
	filter := keyFilter(key)
	filter["status"] = string(status)

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return n, nil
}

func (r *AttendanceRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return r.decodeAll(ctx, cur)
}

func (r *AttendanceRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*domain.AttendanceRecord, error) {
	defer cur.Close(ctx)

	var records []*domain.AttendanceRecord
	for cur.Next(ctx) {
		var m mongoAttendance
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		records = append(records, m.toDomain())
	}
	return records, cur.Err()
}

// EnsureIndexes creates the attendance indexes. The unique compound index
// backs the one-mark-per-member-per-event rule.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "event_type", Value: 1}, {Key: "event_date", Value: -1}}},
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
