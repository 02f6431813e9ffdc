package sms

import (
	"Backend-Results/src/config"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender ส่ง SMS ผ่าน Twilio REST API
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}
	return nil
}

// LogSender ใช้ใน dev mode ที่ไม่มี credentials แค่ log ข้อความไว้
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{log: logger}
}

func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.log.Warn().Str("to", to).Str("body", body).Msg("SMS transport not configured, message not sent")
	return nil
}

// NewSender เลือก Twilio ถ้าตั้งค่าครบ ไม่งั้นใช้ LogSender
func NewSender(cfg config.SMSConfig, logger zerolog.Logger) Sender {
	if cfg.Enabled() {
		return NewTwilioSender(cfg.AccountSID, cfg.AuthToken, cfg.FromPhone)
	}
	return NewLogSender(logger)
}
