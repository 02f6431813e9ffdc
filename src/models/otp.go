package models

import "time"

// OTP รหัสยืนยันครั้งเดียวต่อ email มีได้แค่ตัวเดียวที่ยังใช้งานได้
type OTP struct {
	Email     string    `bson:"email" json:"email"`
	Code      string    `bson:"code" json:"code"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
