package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibehub/showcase-backend/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Add stores a like built through one of the models.New*Like constructors.
// The variant is re-validated here so a raw-assembled row can never reach the
// table, and the write is idempotent: liking the same target twice leaves a
// single row.
func (r *LikeRepo) Add(ctx context.Context, like models.Like) error {
	if err := like.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
}

// Remove deletes the viewer's like on the same target, matching the variant.
// Removing an absent like is a no-op.
func (r *LikeRepo) Remove(ctx context.Context, like models.Like) error {
	if err := like.Validate(); err != nil {
		return err
	}
	q := r.db.WithContext(ctx).Where("user_id = ?", like.UserID)
	switch target, id := like.Target(); target {
	case models.LikeTargetProject:
		q = q.Where("project_id = ?", id)
	case models.LikeTargetComment:
		q = q.Where("comment_id = ?", id)
	case models.LikeTargetReply:
		q = q.Where("reply_id = ?", id)
	}
	return q.Delete(&models.Like{}).Error
}

// CountForProject returns the like count of a single project.
func (r *LikeRepo) CountForProject(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}
