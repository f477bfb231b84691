package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectPageResponse struct {
	Projects []struct {
		ID           uint     `json:"id"`
		Title        string   `json:"title"`
		Tags         []string `json:"tags"`
		LikesCount   int64    `json:"likesCount"`
		IsLiked      bool     `json:"isLiked"`
		IsBookmarked bool     `json:"isBookmarked"`
		Author       struct {
			Username string `json:"username"`
		} `json:"author"`
	} `json:"projects"`
	HasMore bool  `json:"hasMore"`
	Total   int64 `json:"total"`
}

func TestGetProjects_AnonymousListing(t *testing.T) {
	a := newTestAPI(t)
	cookie := a.register(t, "alice")

	a.createProject(t, cookie, "public app", false, "SaaS")
	a.createProject(t, cookie, "secret app", true)

	rec := a.do(t, http.MethodGet, "/api/projects", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page projectPageResponse
	decodeBody(t, rec, &page)

	require.Len(t, page.Projects, 1)
	assert.Equal(t, "public app", page.Projects[0].Title)
	assert.Equal(t, []string{"SaaS"}, page.Projects[0].Tags)
	assert.Equal(t, "alice", page.Projects[0].Author.Username)
	assert.Equal(t, int64(1), page.Total)
	assert.False(t, page.HasMore)
}

func TestGetProjects_TagAndSearchFilters(t *testing.T) {
	a := newTestAPI(t)
	cookie := a.register(t, "alice")

	a.createProject(t, cookie, "recipe finder", false, "AI Tools")
	a.createProject(t, cookie, "budget tracker", false, "Finance")

	rec := a.do(t, http.MethodGet, "/api/projects?tag=ai+tools", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page projectPageResponse
	decodeBody(t, rec, &page)
	require.Len(t, page.Projects, 1)
	assert.Equal(t, "recipe finder", page.Projects[0].Title)

	rec = a.do(t, http.MethodGet, "/api/projects?search=budget", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &page)
	require.Len(t, page.Projects, 1)
	assert.Equal(t, "budget tracker", page.Projects[0].Title)
}

func TestGetProject_PrivateIsNotFoundForOthers(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")

	id := a.createProject(t, alice, "secret app", true)

	rec := a.do(t, http.MethodGet, projectPath(id, ""), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodGet, projectPath(id, ""), nil, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodGet, projectPath(id, ""), nil, alice)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProject_RequiresAuth(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/projects", map[string]string{
		"title":       "drive-by",
		"description": "d",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProject_AuthorOnly(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")

	id := a.createProject(t, alice, "original", false)

	body := map[string]string{"title": "hijacked", "description": "d"}
	rec := a.do(t, http.MethodPut, projectPath(id, ""), body, bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	body["title"] = "renamed"
	rec = a.do(t, http.MethodPut, projectPath(id, ""), body, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Project struct {
			Title string `json:"title"`
		} `json:"project"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "renamed", resp.Project.Title)
}

func TestDeleteProject_AuthorOnly(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	bob := a.register(t, "bob")

	id := a.createProject(t, alice, "doomed", false)

	rec := a.do(t, http.MethodDelete, projectPath(id, ""), nil, bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, http.MethodDelete, projectPath(id, ""), nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, projectPath(id, ""), nil, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordViewAndShare(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice")
	id := a.createProject(t, alice, "viewed", false)

	rec := a.do(t, http.MethodPost, projectPath(id, "/view"), nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.do(t, http.MethodPost, projectPath(id, "/view"), nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodPost, projectPath(id, "/share"), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var share struct {
		SharesCount int64 `json:"sharesCount"`
	}
	decodeBody(t, rec, &share)
	assert.Equal(t, int64(1), share.SharesCount)

	rec = a.do(t, http.MethodGet, projectPath(id, ""), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Project struct {
			ViewsCount  int64 `json:"viewsCount"`
			SharesCount int64 `json:"sharesCount"`
		} `json:"project"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, int64(2), resp.Project.ViewsCount)
	assert.Equal(t, int64(1), resp.Project.SharesCount)
}

func TestGetTags_IncludesKnownCasings(t *testing.T) {
	a := newTestAPI(t)
	cookie := a.register(t, "alice")
	a.createProject(t, cookie, "custom tagged", false, "my custom tag")

	rec := a.do(t, http.MethodGet, "/api/tags", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tags []string `json:"tags"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Tags, "my custom tag")
	assert.Contains(t, resp.Tags, "SaaS")
	assert.Contains(t, resp.Tags, "AI Tools")
}

func TestGetTrendingProjects(t *testing.T) {
	a := newTestAPI(t)
	cookie := a.register(t, "alice")
	a.createProject(t, cookie, "one", false)
	a.createProject(t, cookie, "two", false)
	a.createProject(t, cookie, "hidden", true)

	rec := a.do(t, http.MethodGet, "/api/projects/trending?limit=5", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
	}
	decodeBody(t, rec, &resp)
	assert.Len(t, resp.Projects, 2)
	for _, p := range resp.Projects {
		assert.NotEqual(t, "hidden", p.Title)
	}
}

func TestGetFeaturedProject_NoneSet(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/projects/featured", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"project": null}`, rec.Body.String())
}
