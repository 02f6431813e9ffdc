package students

import (
	"Backend-Results/src/database"
	"Backend-Results/src/models"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store การเข้าถึงข้อมูลนักเรียน
type Store interface {
	// UpsertByGRNumber เขียนทับ name/rollNumber/standard/stream ของนักเรียนที่มี GRNumber นี้
	// ถ้ายังไม่มีจะสร้างใหม่ (last write wins)
	UpsertByGRNumber(ctx context.Context, student *models.Student) (*models.Student, error)
	FindByGRNumber(ctx context.Context, grNumber string) (*models.Student, error)
	// FindForLookup ค้นด้วย GRNumber หรือ rollNumber ภายในชั้นเดียวกัน
	// stream ใช้เฉพาะชั้น 11/12
	FindForLookup(ctx context.Context, identifier, standard, stream string) (*models.Student, error)
}

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(database.StudentCollection)}
}

func (s *MongoStore) UpsertByGRNumber(ctx context.Context, student *models.Student) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var stream interface{}
	if student.Stream != "" {
		stream = student.Stream
	}

	filter := bson.M{"GRNumber": student.GRNumber}
	update := bson.M{"$set": bson.M{
		"name":       student.Name,
		"rollNumber": student.RollNumber,
		"standard":   student.Standard,
		"stream":     stream,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Student
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *MongoStore) FindByGRNumber(ctx context.Context, grNumber string) (*models.Student, error) {
	return s.findOne(ctx, bson.M{"GRNumber": grNumber})
}

func (s *MongoStore) FindForLookup(ctx context.Context, identifier, standard, stream string) (*models.Student, error) {
	return s.findOne(ctx, LookupFilter(identifier, standard, stream))
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var student models.Student
	err := s.collection.FindOne(ctx, filter).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// LookupFilter สร้าง filter สำหรับค้นหานักเรียน
func LookupFilter(identifier, standard, stream string) bson.M {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"GRNumber": identifier},
			bson.M{"rollNumber": identifier},
		},
		"standard": standard,
	}
	if models.StreamRequired(standard) {
		filter["stream"] = stream
	}
	return filter
}
