package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	StudentCollection = "students"
	ResultCollection  = "results"
	UserCollection    = "users"
	OTPCollection     = "otps"
)

// ConnectMongoDB เชื่อมต่อและ ping MongoDB คืน database ที่ใช้งาน
func ConnectMongoDB(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// ตรวจสอบการเชื่อมต่อ
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes สร้าง index ที่ invariant ของข้อมูลต้องพึ่ง
// - GRNumber ไม่ซ้ำ
// - result ได้แค่หนึ่งตัวต่อ (studentId, academicYear)
// - email ของ user ไม่ซ้ำ
// - OTP หมดอายุแล้วให้ Mongo ลบทิ้งเอง
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		StudentCollection: {
			{Keys: bson.D{{Key: "GRNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "rollNumber", Value: 1}, {Key: "standard", Value: 1}}},
		},
		ResultCollection: {
			{
				Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "academicYear", Value: -1}},
				Options: options.Index().SetUnique(true),
			},
		},
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		OTPCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
