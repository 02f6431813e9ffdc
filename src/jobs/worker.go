package jobs

import (
	"Backend-Results/src/services/sms"
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// HandleSendSMSTask ส่ง SMS ตาม payload ของ task
func HandleSendSMSTask(sender sms.Sender, logger zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SendSMSPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error().Err(err).Msg("invalid sms payload")
			return fmt.Errorf("decode sms payload: %v: %w", err, asynq.SkipRetry)
		}

		if err := sender.Send(ctx, payload.To, payload.Body); err != nil {
			logger.Error().Err(err).Str("to", payload.To).Msg("sms delivery failed")
			return err
		}
		logger.Info().Str("to", payload.To).Msg("sms delivered")
		return nil
	}
}

// RegisterHandlers ผูก handler ทั้งหมดของ worker
func RegisterHandlers(mux *asynq.ServeMux, sender sms.Sender, logger zerolog.Logger) {
	mux.HandleFunc(TypeSendOTPSMS, HandleSendSMSTask(sender, logger))
}

// NewServer worker ที่ใช้ Redis เดียวกับ client
func NewServer(redisAddr string, logger zerolog.Logger) *asynq.Server {
	return asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 2,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error().Err(err).Str("type", task.Type()).Msg("task failed")
		}),
	})
}
