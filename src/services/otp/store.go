package otp

import (
	"Backend-Results/src/database"
	"Backend-Results/src/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store เก็บ OTP ได้หนึ่งตัวต่อ email, Save ทับตัวเดิมเสมอ
type Store interface {
	Save(ctx context.Context, otp *models.OTP) error
	Get(ctx context.Context, email string) (*models.OTP, error)
	Delete(ctx context.Context, email string) error
}

// RedisStore key otp:<email> หมดอายุตาม ExpiresAt
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(email string) string {
	return fmt.Sprintf("otp:%s", email)
}

func (s *RedisStore) Save(ctx context.Context, otp *models.OTP) error {
	payload, err := json.Marshal(otp)
	if err != nil {
		return err
	}
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("otp for %s already expired", otp.Email)
	}
	if err := s.client.Set(ctx, redisKey(otp.Email), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (*models.OTP, error) {
	raw, err := s.client.Get(ctx, redisKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}

	var otp models.OTP
	if err := json.Unmarshal(raw, &otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, redisKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}

// MongoStore ใช้ตอนไม่มี Redis, TTL index บน expiresAt จะลบ document ที่หมดอายุให้
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(database.OTPCollection)}
}

func (s *MongoStore) Save(ctx context.Context, otp *models.OTP) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.collection.ReplaceOne(ctx, bson.M{"email": otp.Email}, otp, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Get(ctx context.Context, email string) (*models.OTP, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var otp models.OTP
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrOTPNotFound
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (s *MongoStore) Delete(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.collection.DeleteOne(ctx, bson.M{"email": email})
	return err
}
