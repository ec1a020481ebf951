package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/choralis/choir-api/internal/core/domain"
)

const defaultOTPTTL = 5 * time.Minute

// OTPStore holds phone login codes in Redis with a short TTL.
// Key format: otp:<phone>
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPStore{client: client, ttl: ttl}
}

// Save stores the code, replacing any previous one for the phone.
func (s *OTPStore) Save(ctx context.Context, phone, code string) error {
	if err := s.client.Set(ctx, s.key(phone), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("otp save: %w", err)
	}
	return nil
}

// Consume returns the stored code and deletes it atomically, so a code can
// only be exchanged once. Absent or expired codes map to ErrInvalidOTP.
func (s *OTPStore) Consume(ctx context.Context, phone string) (string, error) {
	code, err := s.client.GetDel(ctx, s.key(phone)).Result()
	if err == redis.Nil {
		return "", domain.ErrInvalidOTP
	}
	if err != nil {
		return "", fmt.Errorf("otp consume: %w", err)
	}
	return code, nil
}

func (s *OTPStore) key(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}
