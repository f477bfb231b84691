package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	a := newTestAPI(t)

	cookie := a.register(t, "alice")

	// The cookie authenticates /me
	rec := a.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, rec, &me)
	assert.Equal(t, "alice", me.User.Username)
	assert.Equal(t, "alice@example.com", me.User.Email)

	// Password hashes never leave the server
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	// Logout revokes the session
	rec = a.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MeWithoutSession(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_Login(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice")

	rec := a.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "hunter2hunter2",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	issued := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			issued = true
		}
	}
	assert.True(t, issued, "login should issue a session cookie")
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice")

	rec := a.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "not the password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown users fail the same way
	rec = a.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RegisterValidation(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice")

	cases := []struct {
		name string
		body map[string]string
		want int
	}{
		{"duplicate username", map[string]string{"username": "alice", "email": "other@example.com", "password": "hunter2hunter2"}, http.StatusConflict},
		{"duplicate email", map[string]string{"username": "alice2", "email": "alice@example.com", "password": "hunter2hunter2"}, http.StatusConflict},
		{"short password", map[string]string{"username": "bob", "email": "bob@example.com", "password": "short"}, http.StatusBadRequest},
		{"missing email", map[string]string{"username": "bob", "password": "hunter2hunter2"}, http.StatusBadRequest},
		{"missing username", map[string]string{"email": "bob@example.com", "password": "hunter2hunter2"}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/api/auth/register", tc.body, nil)
			assert.Equal(t, tc.want, rec.Code, "body: %s", rec.Body.String())
		})
	}
}

func TestAuth_UpdateProfile(t *testing.T) {
	a := newTestAPI(t)
	cookie := a.register(t, "alice")

	rec := a.do(t, http.MethodPut, "/api/auth/me", map[string]string{
		"bio":       "building things",
		"avatarUrl": "https://cdn.example.com/alice.png",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User struct {
			Bio       *string `json:"bio"`
			AvatarURL *string `json:"avatarUrl"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.User.Bio)
	assert.Equal(t, "building things", *resp.User.Bio)
	require.NotNil(t, resp.User.AvatarURL)
	assert.Equal(t, "https://cdn.example.com/alice.png", *resp.User.AvatarURL)
}
