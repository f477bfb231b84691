package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibehub/showcase-backend/models"
)

type ProjectViewRepo struct {
	db *gorm.DB
}

func NewProjectViewRepo(db *gorm.DB) *ProjectViewRepo {
	return &ProjectViewRepo{db}
}

// Record counts one view: the project's lifetime counter and the monthly
// aggregate for the view's calendar month move together in one transaction.
// The monthly row is written as an insert-on-conflict-increment, so two
// concurrent views of a fresh month cannot race each other into duplicate
// rows.
func (r *ProjectViewRepo) Record(ctx context.Context, projectID uint, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", projectID).
			Update("views_count", gorm.Expr("views_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		view := models.ProjectView{
			ProjectID: projectID,
			Month:     int(at.Month()),
			Year:      at.Year(),
			Count:     1,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
		}).Create(&view).Error
	})
}

// MonthlyCount returns a project's view count for the given calendar month,
// 0 when no row exists.
func (r *ProjectViewRepo) MonthlyCount(ctx context.Context, projectID uint, month, year int) (int64, error) {
	var view models.ProjectView
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND month = ? AND year = ?", projectID, month, year).
		First(&view).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return view.Count, nil
}
