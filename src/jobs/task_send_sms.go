package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeSendOTPSMS = "otp:send_sms"

type SendSMSPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// NewSendSMSTask ไม่มีการ retry อัตโนมัติ ส่งไม่สำเร็จจะถูก log ไว้เท่านั้น
func NewSendSMSTask(to, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(SendSMSPayload{To: to, Body: body})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendOTPSMS, payload, asynq.MaxRetry(0)), nil
}
