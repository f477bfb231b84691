package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibehub/showcase-backend/notify"
)

func TestLikeProject(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")
	id := a.createProject(t, alice, "likeable", false)

	rec := a.do(t, http.MethodPost, projectPath(id, "/like"), nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		LikesCount int64 `json:"likesCount"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, int64(1), resp.LikesCount)

	// Liking twice stays at one
	rec = a.do(t, http.MethodPost, projectPath(id, "/like"), nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Equal(t, int64(1), resp.LikesCount)

	// The liking viewer sees isLiked; others do not
	rec = a.do(t, http.MethodGet, "/api/projects", nil, bob)
	var page projectPageResponse
	decodeBody(t, rec, &page)
	require.Len(t, page.Projects, 1)
	assert.True(t, page.Projects[0].IsLiked)

	rec = a.do(t, http.MethodGet, "/api/projects", nil, nil)
	decodeBody(t, rec, &page)
	assert.False(t, page.Projects[0].IsLiked)
	assert.Equal(t, int64(1), page.Projects[0].LikesCount)

	// Unlike brings the count back down
	rec = a.do(t, http.MethodDelete, projectPath(id, "/like"), nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Zero(t, resp.LikesCount)
}

func TestLikeProject_RequiresAuth(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	id := a.createProject(t, alice, "likeable", false)

	rec := a.do(t, http.MethodPost, projectPath(id, "/like"), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLikeProject_NotifiesAuthor(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")
	id := a.createProject(t, alice, "watched", false)

	// Subscribe as the project author
	var aliceID uint
	{
		user, err := a.db.UserRepo().FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		aliceID = user.ID
	}
	events, unsubscribe := a.bus.Subscribe(aliceID)
	defer unsubscribe()

	rec := a.do(t, http.MethodPost, projectPath(id, "/like"), nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, events, 1)
	event := <-events
	assert.Equal(t, notify.EventProjectLiked, event.Type)
	assert.Equal(t, id, event.ProjectID)
	assert.Equal(t, aliceID, event.RecipientID)
}

func TestBookmarkProject(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")
	id := a.createProject(t, alice, "bookmarkable", false)

	rec := a.do(t, http.MethodPost, projectPath(id, "/bookmark"), nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/bookmarks", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Projects []struct {
			ID           uint `json:"id"`
			IsBookmarked bool `json:"isBookmarked"`
		} `json:"projects"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, id, resp.Projects[0].ID)
	assert.True(t, resp.Projects[0].IsBookmarked)

	rec = a.do(t, http.MethodDelete, projectPath(id, "/bookmark"), nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/bookmarks", nil, bob)
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Projects)
}

func TestComments_CreateListReply(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")
	id := a.createProject(t, alice, "discussed", false)

	rec := a.do(t, http.MethodPost, projectPath(id, "/comments"), map[string]string{
		"content": "very cool",
	}, bob)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Comment struct {
			ID uint `json:"id"`
		} `json:"comment"`
	}
	decodeBody(t, rec, &created)

	rec = a.do(t, http.MethodPost, "/api/comments/1/replies", map[string]string{
		"content": "thank you",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Comment likes
	rec = a.do(t, http.MethodPost, "/api/comments/1/like", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, projectPath(id, "/comments"), nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Comments []struct {
			Content    string `json:"content"`
			LikesCount int64  `json:"likesCount"`
			IsLiked    bool   `json:"isLiked"`
			Author     struct {
				Username string `json:"username"`
			} `json:"author"`
			Replies []struct {
				Content string `json:"content"`
				Author  struct {
					Username string `json:"username"`
				} `json:"author"`
			} `json:"replies"`
		} `json:"comments"`
		HasMore bool  `json:"hasMore"`
		Total   int64 `json:"total"`
	}
	decodeBody(t, rec, &page)

	require.Len(t, page.Comments, 1)
	assert.Equal(t, "very cool", page.Comments[0].Content)
	assert.Equal(t, "bob", page.Comments[0].Author.Username)
	assert.Equal(t, int64(1), page.Comments[0].LikesCount)
	assert.True(t, page.Comments[0].IsLiked)
	require.Len(t, page.Comments[0].Replies, 1)
	assert.Equal(t, "thank you", page.Comments[0].Replies[0].Content)
	assert.Equal(t, "alice", page.Comments[0].Replies[0].Author.Username)
	assert.Equal(t, int64(1), page.Total)
}

func TestComments_EmptyContentRejected(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	id := a.createProject(t, alice, "discussed", false)

	rec := a.do(t, http.MethodPost, projectPath(id, "/comments"), map[string]string{
		"content": "   ",
	}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComments_OnPrivateProjectHidden(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")
	id := a.createProject(t, alice, "secret", true)

	rec := a.do(t, http.MethodPost, projectPath(id, "/comments"), map[string]string{
		"content": "found it",
	}, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodGet, projectPath(id, "/comments"), nil, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
