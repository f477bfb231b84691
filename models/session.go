package models

import "time"

// Session backs the session_token cookie. Tokens are random UUIDs; an expired
// row resolves to the anonymous viewer and is swept lazily on lookup.
type Session struct {
	Token     string    `json:"-" db:"token" gorm:"type:text;primaryKey"`
	UserID    uint      `json:"userId" db:"user_id" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
