package models

import "time"

// BlogPost represents an article in the platform's blog subsystem. Unpublished
// posts are visible only to their author and admins.
type BlogPost struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"-" db:"author_id" gorm:"not null;index"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Summary   *string   `json:"summary,omitempty" db:"summary" gorm:"type:text"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CoverURL  *string   `json:"coverUrl,omitempty" db:"cover_url" gorm:"type:text"`
	Published bool      `json:"published" db:"published" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Author User      `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Tags   []BlogTag `json:"tags,omitempty" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
}

// BlogTag represents a tag associated with a blog post.
type BlogTag struct {
	ID         uint   `json:"id" db:"id" gorm:"primaryKey"`
	BlogPostID uint   `json:"blogPostId" db:"blog_post_id" gorm:"not null;index:idx_blog_tag_post_id;uniqueIndex:idx_blog_tag_unique"`
	Value      string `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_blog_tag_unique"`

	BlogPost BlogPost `json:"-" gorm:"foreignKey:BlogPostID;references:ID"`
}
