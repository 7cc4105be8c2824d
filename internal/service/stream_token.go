package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrStreamNotConfigured is returned when no Stream API secret is set.
var ErrStreamNotConfigured = errors.New("stream chat is not configured")

// StreamTokenService mints Stream Chat user tokens. Stream expects an
// HS256 JWT signed with the app's API secret whose user_id claim names
// the chat user.
type StreamTokenService struct {
	apiKey    string
	apiSecret string
	now       func() time.Time
}

// NewStreamTokenService returns a new StreamTokenService.
func NewStreamTokenService(apiKey, apiSecret string) *StreamTokenService {
	return &StreamTokenService{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		now:       time.Now,
	}
}

// Token returns a signed chat token for the given user.
func (s *StreamTokenService) Token(userID uint) (string, error) {
	if s.apiSecret == "" {
		return "", ErrStreamNotConfigured
	}

	claims := jwt.MapClaims{
		"user_id": strconv.FormatUint(uint64(userID), 10),
		"iat":     s.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.apiSecret))
}

// APIKey returns the public Stream API key handed to clients.
func (s *StreamTokenService) APIKey() string {
	return s.apiKey
}
