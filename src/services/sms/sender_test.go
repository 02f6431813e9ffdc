package sms

import (
	"context"
	"testing"

	"Backend-Results/src/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewSenderSelectsTransport(t *testing.T) {
	logger := zerolog.Nop()

	s := NewSender(config.SMSConfig{}, logger)
	assert.IsType(t, &LogSender{}, s)
	assert.NoError(t, s.Send(context.Background(), "+910000000000", "hello"))

	s = NewSender(config.SMSConfig{AccountSID: "AC1", AuthToken: "tok", FromPhone: "+15550001111"}, logger)
	assert.IsType(t, &TwilioSender{}, s)
}

func TestTwilioSenderHonoursCancelledContext(t *testing.T) {
	s := NewTwilioSender("AC1", "tok", "+15550001111")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Send(ctx, "+910000000000", "hello"), context.Canceled)
}
