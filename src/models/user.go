package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User บัญชีผู้ใช้ (admin / student) identity คือ email
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
}
