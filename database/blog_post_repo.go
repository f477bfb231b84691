package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vibehub/showcase-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns blog posts with their tags, newest first. Drafts are
// included only for their own author (or an admin viewer).
func (r *BlogPostRepo) FindAll(ctx context.Context, viewerID uint, includeDrafts bool) ([]models.BlogPost, error) {
	q := r.db.WithContext(ctx).Preload("Tags").Order("created_at DESC")
	if includeDrafts {
		q = q.Where("published = ? OR author_id = ?", true, viewerID)
	} else {
		q = q.Where("published = ?", true)
	}
	var posts []models.BlogPost
	err := q.Find(&posts).Error
	return posts, err
}

// FindBySlug returns a blog post by its slug with tags, or nil on a miss.
func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).Preload("Tags").
		Where("slug = ?", strings.ToLower(slug)).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByID returns a blog post by id with tags, or nil on a miss.
func (r *BlogPostRepo) FindByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).Preload("Tags").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a post and its tags in one transaction.
func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	post.Slug = Slugify(post.Title)
	return r.db.WithContext(ctx).Create(post).Error
}

// Update saves the post row and replaces its tags when they are present on
// the value.
func (r *BlogPostRepo) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if post.Tags != nil {
			if err := tx.Where("blog_post_id = ?", post.ID).Delete(&models.BlogTag{}).Error; err != nil {
				return err
			}
			for i := range post.Tags {
				post.Tags[i].ID = 0
				post.Tags[i].BlogPostID = post.ID
			}
		}
		return tx.Save(post).Error
	})
}

// Delete removes a blog post and its tags.
func (r *BlogPostRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogPost{}, id).Error
	})
}

// Slugify derives a URL slug from a title: lowercase, non-alphanumerics
// collapsed to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
