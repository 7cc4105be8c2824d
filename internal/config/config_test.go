package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:             "production",
			Port:            "8560",
			JWTSecret:       "secure-secret-at-least-32-chars-long",
			DBPassword:      "secure-password",
			DBSSLMode:       "require",
			RedisURL:        "redis://localhost:6379",
			StreamAPISecret: "stream-secret",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid production config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Default JWT secret in production", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }, true},
		{"Short JWT secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"Default DB password in production", func(c *Config) { c.DBPassword = "password" }, true},
		{"SSL disabled in production", func(c *Config) { c.DBSSLMode = "disable" }, true},
		{"Missing stream secret in production", func(c *Config) { c.StreamAPISecret = "" }, true},
		{"Development tolerates defaults", func(c *Config) {
			c.Env = "development"
			c.JWTSecret = "dev-secret"
			c.DBPassword = "password"
			c.DBSSLMode = "disable"
			c.StreamAPISecret = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
