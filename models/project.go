package models

import "time"

// Project represents a user-submitted showcase item, the platform's primary
// content unit.
type Project struct {
	ID              uint      `json:"id" db:"id" gorm:"primaryKey"`
	Title           string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description     string    `json:"description" db:"description" gorm:"type:text;not null"`
	LongDescription *string   `json:"longDescription,omitempty" db:"long_description" gorm:"type:text"`
	ProjectURL      string    `json:"projectUrl" db:"project_url" gorm:"type:text;not null"`
	ImageURL        string    `json:"imageUrl" db:"image_url" gorm:"type:text"`
	VibeCodingTool  *string   `json:"vibeCodingTool,omitempty" db:"vibe_coding_tool" gorm:"type:text;index"`
	AuthorID        uint      `json:"-" db:"author_id" gorm:"not null;index"`
	ViewsCount      int64     `json:"viewsCount" db:"views_count" gorm:"not null;default:0"`
	SharesCount     int64     `json:"sharesCount" db:"shares_count" gorm:"not null;default:0"`
	Featured        bool      `json:"featured" db:"featured" gorm:"not null;default:false;index"`
	IsPrivate       bool      `json:"isPrivate" db:"is_private" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	Author  User           `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Gallery []GalleryImage `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// GalleryImage is an ordered secondary image attached to a project. Gallery
// rows are created in the same transaction as the project and deleted with it.
type GalleryImage struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"projectId" db:"project_id" gorm:"not null;index"`
	ImageURL  string    `json:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	Position  int       `json:"position" db:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProjectCard is the enriched project shape every listing and detail endpoint
// returns: the stored row plus the derived engagement fields for the current
// viewer. IsLiked and IsBookmarked are always false for the anonymous viewer.
type ProjectCard struct {
	Project
	Author        Author   `json:"author"`
	Tags          []string `json:"tags"`
	LikesCount    int64    `json:"likesCount"`
	CommentsCount int64    `json:"commentsCount"`
	IsLiked       bool     `json:"isLiked"`
	IsBookmarked  bool     `json:"isBookmarked"`
	Gallery       []string `json:"gallery,omitempty"`
}

// VisibleTo reports whether the project may be shown to the given viewer:
// public, or viewed by its own author.
func (p Project) VisibleTo(viewerID uint) bool {
	return !p.IsPrivate || (viewerID != 0 && p.AuthorID == viewerID)
}
