package models

import "time"

// Comment is a top-level comment on a project.
type Comment struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"projectId" db:"project_id" gorm:"not null;index"`
	AuthorID  uint      `json:"-" db:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Author  User           `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Replies []CommentReply `json:"-" gorm:"foreignKey:CommentID;references:ID;constraint:OnDelete:CASCADE"`
}

// CommentReply is a second-level reply to a comment. Threads stop here.
type CommentReply struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	CommentID uint      `json:"commentId" db:"comment_id" gorm:"not null;index"`
	AuthorID  uint      `json:"-" db:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
}

// CommentCard is a comment decorated for the current viewer, replies included.
type CommentCard struct {
	Comment
	Author     Author      `json:"author"`
	LikesCount int64       `json:"likesCount"`
	IsLiked    bool        `json:"isLiked"`
	Replies    []ReplyCard `json:"replies"`
}

// ReplyCard is a reply decorated for the current viewer.
type ReplyCard struct {
	CommentReply
	Author     Author `json:"author"`
	LikesCount int64  `json:"likesCount"`
	IsLiked    bool   `json:"isLiked"`
}
