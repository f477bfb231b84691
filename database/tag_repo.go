package database

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/vibehub/showcase-backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns every stored tag, ordered by name.
func (r *TagRepo) FindAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

// FindOrCreate resolves a tag by its case-insensitive identity, creating it
// on first use.
func (r *TagRepo) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where(models.Tag{Name: normalized}).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
