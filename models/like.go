package models

import (
	"errors"
	"time"
)

// ErrAmbiguousLikeTarget is returned by Like.Validate when the row does not
// reference exactly one target.
var ErrAmbiguousLikeTarget = errors.New("like must reference exactly one of project, comment or reply")

// Like records a user liking exactly one of a project, a comment or a reply.
// The table keeps three nullable foreign keys, but application code never
// assigns them directly: likes are built through NewProjectLike,
// NewCommentLike or NewReplyLike so that exactly one target is ever set, and
// the repository re-validates on every write.
//
// The per-target composite unique indexes give (user, target) uniqueness:
// rows for a different target kind carry NULL in the indexed column and never
// collide.
type Like struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" db:"user_id" gorm:"not null;index;uniqueIndex:idx_like_user_project;uniqueIndex:idx_like_user_comment;uniqueIndex:idx_like_user_reply"`
	ProjectID *uint     `json:"projectId,omitempty" db:"project_id" gorm:"index;uniqueIndex:idx_like_user_project"`
	CommentID *uint     `json:"commentId,omitempty" db:"comment_id" gorm:"index;uniqueIndex:idx_like_user_comment"`
	ReplyID   *uint     `json:"replyId,omitempty" db:"reply_id" gorm:"index;uniqueIndex:idx_like_user_reply"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// LikeTarget discriminates the three like variants.
type LikeTarget int

const (
	LikeTargetProject LikeTarget = iota
	LikeTargetComment
	LikeTargetReply
)

// NewProjectLike builds a like on a project.
func NewProjectLike(userID, projectID uint) Like {
	return Like{UserID: userID, ProjectID: &projectID}
}

// NewCommentLike builds a like on a top-level comment.
func NewCommentLike(userID, commentID uint) Like {
	return Like{UserID: userID, CommentID: &commentID}
}

// NewReplyLike builds a like on a comment reply.
func NewReplyLike(userID, replyID uint) Like {
	return Like{UserID: userID, ReplyID: &replyID}
}

// Target returns the discriminant and the id of the single referenced entity.
// Call Validate first; Target on an invalid like returns the first non-nil
// field it finds.
func (l Like) Target() (LikeTarget, uint) {
	switch {
	case l.ProjectID != nil:
		return LikeTargetProject, *l.ProjectID
	case l.CommentID != nil:
		return LikeTargetComment, *l.CommentID
	default:
		return LikeTargetReply, derefOrZero(l.ReplyID)
	}
}

// Validate enforces the exactly-one-target invariant.
func (l Like) Validate() error {
	set := 0
	if l.ProjectID != nil {
		set++
	}
	if l.CommentID != nil {
		set++
	}
	if l.ReplyID != nil {
		set++
	}
	if set != 1 {
		return ErrAmbiguousLikeTarget
	}
	return nil
}

func derefOrZero(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}
