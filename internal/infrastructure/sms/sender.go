// Package sms holds SMSSender implementations. The log sender stands in for
// a real telephony gateway; the delivery contract is fire-and-forget either
// way, so callers never change when a gateway is wired in.
package sms

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes outbound messages to the log instead of a gateway.
// Useful for development and as the default until a provider is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, phone, message string) error {
	s.log.Info().
		Str("phone", phone).
		Str("message", message).
		Msg("sms dispatched")
	return nil
}
