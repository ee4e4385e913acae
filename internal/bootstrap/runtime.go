// Package bootstrap establishes the shared runtime dependencies (database,
// Redis) used by the server and operational commands.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/quocnhat02092003/thread-app/internal/cache"
	"github.com/quocnhat02092003/thread-app/internal/config"
	"github.com/quocnhat02092003/thread-app/internal/database"
	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and ensures the optional
// development root account exists. The Redis client may be nil when the
// broker is unreachable; callers degrade to in-process delivery.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevRootAccount(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root account: %w", err)
	}

	return db, r, nil
}

// ensureDevRootAccount guarantees a usable verified account with ID 1 in
// development, so a fresh database is immediately signable-in.
func ensureDevRootAccount(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	username := strings.TrimSpace(strings.ToLower(cfg.DevRootUsername))
	if username == "" {
		username = "thread_root"
	}
	password := cfg.DevRootPassword
	if password == "" {
		return fmt.Errorf("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.First(&root, 1).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				ID:               1,
				Username:         username,
				Password:         string(hashedPassword),
				DisplayName:      "Root",
				Verified:         true,
				IsAdmin:          true,
				NeedMoreInfoUser: false,
			}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			updates := map[string]any{"is_admin": true, "verified": true}
			if cfg.DevRootForceCredentials {
				updates["username"] = username
				updates["password"] = string(hashedPassword)
			}
			if err := tx.Model(&models.User{}).Where("id = ?", 1).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Ensure users ID sequence is not behind explicit ID insertion.
		// This is PostgreSQL-specific.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('users', 'id'),
					GREATEST((SELECT COALESCE(MAX(id), 1) FROM users), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset users sequence: %w", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	log.Printf("development root account bootstrap ensured for user ID 1 (%s)", username)
	return nil
}
