package models

import "time"

// Bookmark is a (user, project) pair, unique per pair.
type Bookmark struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" db:"user_id" gorm:"not null;index;uniqueIndex:idx_bookmark_user_project"`
	ProjectID uint      `json:"projectId" db:"project_id" gorm:"not null;index;uniqueIndex:idx_bookmark_user_project"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
