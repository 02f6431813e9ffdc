package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Standard ระดับชั้นที่รองรับ
var Standards = []string{"8", "9", "10", "11", "12"}

// Streams สายการเรียน ใช้เฉพาะชั้น 11 และ 12
var Streams = []string{"Science", "Commerce", "Arts"}

// Student นักเรียน identity คือ GRNumber
type Student struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	GRNumber    string             `bson:"GRNumber" json:"GRNumber"`
	RollNumber  string             `bson:"rollNumber" json:"rollNumber"`
	Standard    string             `bson:"standard" json:"standard"`
	Stream      string             `bson:"stream,omitempty" json:"stream,omitempty"`
	ContactInfo *ContactInfo       `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
}

type ContactInfo struct {
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

// StreamRequired ชั้น 11/12 ต้องระบุ stream
func StreamRequired(standard string) bool {
	return standard == "11" || standard == "12"
}
