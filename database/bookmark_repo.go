package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibehub/showcase-backend/models"
)

type BookmarkRepo struct {
	db *gorm.DB
}

func NewBookmarkRepo(db *gorm.DB) *BookmarkRepo {
	return &BookmarkRepo{db}
}

// Add bookmarks a project for a user. Idempotent per (user, project).
func (r *BookmarkRepo) Add(ctx context.Context, userID, projectID uint) error {
	bookmark := models.Bookmark{UserID: userID, ProjectID: projectID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&bookmark).Error
}

// Remove drops a user's bookmark on a project. No-op when absent.
func (r *BookmarkRepo) Remove(ctx context.Context, userID, projectID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.Bookmark{}).Error
}

// ProjectIDsForUser returns the ids of every project the user has bookmarked,
// newest bookmark first.
func (r *BookmarkRepo) ProjectIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("project_id", &ids).Error
	return ids, err
}
