package database

import (
	"github.com/hibiken/asynq"
)

// NewAsynqClient สร้าง client สำหรับ enqueue งาน คืน nil ถ้าไม่มี Redis
func NewAsynqClient(redisAddr string) *asynq.Client {
	if redisAddr == "" {
		return nil
	}
	return asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
}
