package jobs

import (
	"Backend-Results/src/services/sms"
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer ส่วนของ asynq.Client ที่ใช้
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// OTPDispatcher ส่ง OTP ไปที่เบอร์ admin
// ถ้ามี asynq จะ enqueue ให้ worker ส่ง ไม่งั้นส่งทันที
type OTPDispatcher struct {
	queue      Enqueuer
	sender     sms.Sender
	adminPhone string
	log        zerolog.Logger
}

func NewOTPDispatcher(queue Enqueuer, sender sms.Sender, adminPhone string, logger zerolog.Logger) *OTPDispatcher {
	return &OTPDispatcher{queue: queue, sender: sender, adminPhone: adminPhone, log: logger}
}

// SMSTaskID ผูก task กับ (email, code) ทำให้ enqueue OTP เดิมซ้ำไม่ได้
func SMSTaskID(email, code string) string {
	return fmt.Sprintf("otp-sms:%s:%s", email, code)
}

func OTPMessage(email, code string) string {
	return fmt.Sprintf("Your OTP for admin signup (%s) is %s", email, code)
}

func (d *OTPDispatcher) NotifyOTP(ctx context.Context, email, code string) error {
	if d.adminPhone == "" {
		return fmt.Errorf("admin phone not configured")
	}
	body := OTPMessage(email, code)

	if d.queue != nil {
		task, err := NewSendSMSTask(d.adminPhone, body)
		if err != nil {
			return err
		}
		info, err := d.queue.EnqueueContext(ctx, task, asynq.TaskID(SMSTaskID(email, code)))
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			d.log.Debug().Str("email", email).Msg("otp sms already queued")
			return nil
		}
		if err != nil {
			return fmt.Errorf("enqueue sms: %w", err)
		}
		d.log.Debug().Str("taskId", info.ID).Str("email", email).Msg("otp sms enqueued")
		return nil
	}

	return d.sender.Send(ctx, d.adminPhone, body)
}
