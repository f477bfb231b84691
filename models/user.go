package models

import "time"

// User is a registered member of the platform. A user id of 0 always means
// the anonymous viewer and never matches a stored row.
type User struct {
	ID           uint      `json:"id" db:"id" gorm:"primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Email        string    `json:"email,omitempty" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url" gorm:"type:text"`
	Bio          *string   `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Author is the slice of User embedded in project and comment responses.
type Author struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// AsAuthor converts a User to its public Author representation.
func (u User) AsAuthor() Author {
	return Author{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}
