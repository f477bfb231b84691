package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vibehub/showcase-backend/models"
)

const DefaultCommentLimit = 10

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// CommentPage is the paginated comment envelope for a project.
type CommentPage struct {
	Comments []models.CommentCard `json:"comments"`
	HasMore  bool                 `json:"hasMore"`
	Total    int64                `json:"total"`
}

// Add inserts a top-level comment.
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// AddReply inserts a reply under an existing comment.
func (r *CommentRepo) AddReply(ctx context.Context, reply *models.CommentReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

// FindByID returns a comment row by id, or nil on a miss.
func (r *CommentRepo) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindReplyByID returns a reply row by id, or nil on a miss.
func (r *CommentRepo) FindReplyByID(ctx context.Context, id uint) (*models.CommentReply, error) {
	var reply models.CommentReply
	err := r.db.WithContext(ctx).First(&reply, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Delete removes a comment, its replies and the likes on both.
func (r *CommentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replyIDs := tx.Model(&models.CommentReply{}).Select("id").Where("comment_id = ?", id)
		if err := tx.Where("reply_id IN (?)", replyIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentReply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// ListForProject returns one page of a project's comments, oldest first, each
// decorated with its author, replies and the viewer's like flags. The count
// query shares the page query's predicate.
func (r *CommentRepo) ListForProject(ctx context.Context, projectID, viewerID uint, page, limit int) (*CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultCommentLimit
	}
	offset := (page - 1) * limit

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	cards, err := r.enrich(ctx, comments, viewerID)
	if err != nil {
		return nil, err
	}

	return &CommentPage{
		Comments: cards,
		HasMore:  int64(offset+len(comments)) < total,
		Total:    total,
	}, nil
}

func (r *CommentRepo) enrich(ctx context.Context, comments []models.Comment, viewerID uint) ([]models.CommentCard, error) {
	if len(comments) == 0 {
		return []models.CommentCard{}, nil
	}

	commentIDs := make([]uint, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	var replies []models.CommentReply
	if err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}

	replyIDs := make([]uint, len(replies))
	authorIDs := map[uint]bool{}
	for i, rep := range replies {
		replyIDs[i] = rep.ID
		authorIDs[rep.AuthorID] = true
	}
	for _, c := range comments {
		authorIDs[c.AuthorID] = true
	}

	ids := make([]uint, 0, len(authorIDs))
	for id := range authorIDs {
		ids = append(ids, id)
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	authors := make(map[uint]models.Author, len(users))
	for _, u := range users {
		authors[u.ID] = u.AsAuthor()
	}

	commentLikes := map[uint]int64{}
	replyLikes := map[uint]int64{}
	var counts []countRow
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("comment_id AS id, COUNT(*) AS n").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		commentLikes[c.ID] = c.N
	}
	if len(replyIDs) > 0 {
		counts = counts[:0]
		if err := r.db.WithContext(ctx).Model(&models.Like{}).
			Select("reply_id AS id, COUNT(*) AS n").
			Where("reply_id IN ?", replyIDs).
			Group("reply_id").
			Scan(&counts).Error; err != nil {
			return nil, err
		}
		for _, c := range counts {
			replyLikes[c.ID] = c.N
		}
	}

	likedComments := map[uint]bool{}
	likedReplies := map[uint]bool{}
	if viewerID != 0 {
		var viewerLikes []models.Like
		q := r.db.WithContext(ctx).Where("user_id = ?", viewerID).
			Where("comment_id IN ?", commentIDs)
		if len(replyIDs) > 0 {
			q = r.db.WithContext(ctx).Where("user_id = ?", viewerID).
				Where("comment_id IN ? OR reply_id IN ?", commentIDs, replyIDs)
		}
		if err := q.Find(&viewerLikes).Error; err != nil {
			return nil, err
		}
		for _, l := range viewerLikes {
			if l.CommentID != nil {
				likedComments[*l.CommentID] = true
			}
			if l.ReplyID != nil {
				likedReplies[*l.ReplyID] = true
			}
		}
	}

	repliesByComment := map[uint][]models.ReplyCard{}
	for _, rep := range replies {
		repliesByComment[rep.CommentID] = append(repliesByComment[rep.CommentID], models.ReplyCard{
			CommentReply: rep,
			Author:       authors[rep.AuthorID],
			LikesCount:   replyLikes[rep.ID],
			IsLiked:      likedReplies[rep.ID],
		})
	}

	cards := make([]models.CommentCard, len(comments))
	for i, c := range comments {
		replyCards := repliesByComment[c.ID]
		if replyCards == nil {
			replyCards = []models.ReplyCard{}
		}
		cards[i] = models.CommentCard{
			Comment:    c,
			Author:     authors[c.AuthorID],
			LikesCount: commentLikes[c.ID],
			IsLiked:    likedComments[c.ID],
			Replies:    replyCards,
		}
	}
	return cards, nil
}
