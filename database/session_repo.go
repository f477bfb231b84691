package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibehub/showcase-backend/models"
)

// DefaultSessionTTL is how long a freshly issued session cookie stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

// Create issues a new session token for the user.
func (r *SessionRepo) Create(ctx context.Context, userID uint, ttl time.Duration) (*models.Session, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Resolve maps a cookie token to a user id. Unknown or expired tokens resolve
// to 0, the anonymous viewer; expired rows are deleted on the way out.
func (r *SessionRepo) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, nil
	}
	var session models.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if session.Expired(time.Now()) {
		if err := r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}
	return session.UserID, nil
}

// Revoke deletes the session behind a token. Revoking an unknown token is a
// no-op.
func (r *SessionRepo) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
}
