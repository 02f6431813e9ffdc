package results

import (
	"Backend-Results/src/database"
	"Backend-Results/src/models"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store การเข้าถึงข้อมูลผลการเรียน
type Store interface {
	// Upsert แทนที่ subjects/totalMarks/percentage/grade ของ (studentId, academicYear)
	// ใน operation เดียว ถ้ายังไม่มีจะสร้างใหม่
	Upsert(ctx context.Context, result *models.Result) (*models.Result, error)
	// FindLatest ผลของปีการศึกษาล่าสุด (เรียง academicYear แบบ string จากมากไปน้อย)
	FindLatest(ctx context.Context, studentID primitive.ObjectID) (*models.Result, error)
	FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Result, error)
}

type MongoStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(database.ResultCollection), now: time.Now}
}

func (s *MongoStore) Upsert(ctx context.Context, result *models.Result) (*models.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := s.now().UTC()
	filter := bson.M{"studentId": result.StudentID, "academicYear": result.AcademicYear}
	update := bson.M{
		"$set": bson.M{
			"subjects":   result.Subjects,
			"totalMarks": result.TotalMarks,
			"percentage": result.Percentage,
			"grade":      result.Grade,
			"updatedAt":  now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Result
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *MongoStore) FindLatest(ctx context.Context, studentID primitive.ObjectID) (*models.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "academicYear", Value: -1}})

	var result models.Result
	err := s.collection.FindOne(ctx, bson.M{"studentId": studentID}, opts).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *MongoStore) FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "academicYear", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]models.Result, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
