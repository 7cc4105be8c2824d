// Package bootstrap wires up the process-wide runtime dependencies:
// database, Redis, and the optional development convenience account.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"reconnect/internal/cache"
	"reconnect/internal/config"
	"reconnect/internal/database"
	"reconnect/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis. Redis being down is
// not fatal; the returned client is nil and callers degrade.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := EnsureDevAccount(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development account: %w", err)
	}

	return db, r, nil
}

// EnsureDevAccount creates (or refreshes the password of) a ready-made
// onboarded login so a developer can sign in without seeding. Only
// honored when APP_ENV is development and DEV_BOOTSTRAP_USER is set.
func EnsureDevAccount(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapUser {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevUserEmail))
	if email == "" {
		email = "dev@reconnect.local"
	}
	password := cfg.DevUserPassword
	if password == "" {
		return fmt.Errorf("DEV_USER_PASSWORD must be set when DEV_BOOTSTRAP_USER is enabled")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash dev account password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		findErr := tx.Where("email = ?", email).First(&existing).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			return tx.Create(&models.User{
				FullName:         "Dev Account",
				Email:            email,
				Password:         string(hashed),
				Bio:              "Local development account",
				NativeLanguage:   "english",
				LearningLanguage: "spanish",
				Location:         "localhost",
				ProfilePic:       "https://avatar.iran.liara.run/public/1.png",
				IsOnboarded:      true,
			}).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).Where("id = ?", existing.ID).
				Updates(map[string]any{"password": string(hashed), "is_onboarded": true}).Error
		}
	}); err != nil {
		return err
	}

	log.Printf("development account ensured (%s)", email)
	return nil
}
