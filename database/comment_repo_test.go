package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibehub/showcase-backend/models"
)

func addTestComment(t *testing.T, repo *CommentRepo, projectID, authorID uint, content string, at time.Time) *models.Comment {
	t.Helper()
	comment := models.Comment{
		ProjectID: projectID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: at,
	}
	if err := repo.Add(ctx(), &comment); err != nil {
		t.Fatalf("failed to add test comment: %v", err)
	}
	return &comment
}

func TestListForProject_PaginatesOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)

	alice := createTestUser(t, db, "alice")
	project := createTestProject(t, db, alice.ID, "commented")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		addTestComment(t, repo, project.ID, alice.ID, "comment", base.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.ListForProject(ctx(), project.ID, 0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	assert.Len(t, page.Comments, DefaultCommentLimit)
	assert.True(t, page.HasMore)

	// Oldest first within the page
	first := page.Comments[0].CreatedAt
	last := page.Comments[len(page.Comments)-1].CreatedAt
	assert.True(t, first.Before(last))

	page, err = repo.ListForProject(ctx(), project.ID, 0, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Comments, 2)
	assert.False(t, page.HasMore)
}

func TestListForProject_EnrichesRepliesAndLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	likes := NewLikeRepo(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, alice.ID, "commented")

	comment := addTestComment(t, repo, project.ID, bob.ID, "great work", time.Now())
	reply := models.CommentReply{CommentID: comment.ID, AuthorID: alice.ID, Content: "thanks!"}
	require.NoError(t, repo.AddReply(ctx(), &reply))

	require.NoError(t, likes.Add(ctx(), models.NewCommentLike(alice.ID, comment.ID)))
	require.NoError(t, likes.Add(ctx(), models.NewReplyLike(bob.ID, reply.ID)))

	// Alice liked the comment; her flag is set, bob's is not
	page, err := repo.ListForProject(ctx(), project.ID, alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)

	card := page.Comments[0]
	assert.Equal(t, "bob", card.Author.Username)
	assert.Equal(t, int64(1), card.LikesCount)
	assert.True(t, card.IsLiked)

	require.Len(t, card.Replies, 1)
	assert.Equal(t, "alice", card.Replies[0].Author.Username)
	assert.Equal(t, int64(1), card.Replies[0].LikesCount)
	assert.False(t, card.Replies[0].IsLiked)

	// Bob's view of the same thread
	page, err = repo.ListForProject(ctx(), project.ID, bob.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.False(t, page.Comments[0].IsLiked)
	assert.True(t, page.Comments[0].Replies[0].IsLiked)
}

func TestCommentDelete_CascadesRepliesAndLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	likes := NewLikeRepo(db)

	alice := createTestUser(t, db, "alice")
	project := createTestProject(t, db, alice.ID, "commented")

	comment := addTestComment(t, repo, project.ID, alice.ID, "doomed", time.Now())
	reply := models.CommentReply{CommentID: comment.ID, AuthorID: alice.ID, Content: "also doomed"}
	require.NoError(t, repo.AddReply(ctx(), &reply))
	require.NoError(t, likes.Add(ctx(), models.NewCommentLike(alice.ID, comment.ID)))
	require.NoError(t, likes.Add(ctx(), models.NewReplyLike(alice.ID, reply.ID)))

	require.NoError(t, repo.Delete(ctx(), comment.ID))

	var n int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.CommentReply{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Like{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCommentFindByID_Miss(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)

	comment, err := repo.FindByID(ctx(), 999)
	require.NoError(t, err)
	assert.Nil(t, comment)

	reply, err := repo.FindReplyByID(ctx(), 999)
	require.NoError(t, err)
	assert.Nil(t, reply)
}
