package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vibehub/showcase-backend/database"
	"github.com/vibehub/showcase-backend/models"
	"github.com/vibehub/showcase-backend/notify"
)

type testAPI struct {
	router *chi.Mux
	db     database.Database
	gorm   *gorm.DB
	bus    *notify.Bus
}

// newTestAPI stands up the full route tree over an in-memory database. The
// pool is capped at one connection so every query sees the same :memory:
// database.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Project{},
		&models.GalleryImage{},
		&models.Tag{},
		&models.ProjectTag{},
		&models.Like{},
		&models.Bookmark{},
		&models.Comment{},
		&models.CommentReply{},
		&models.ProjectView{},
		&models.BlogPost{},
		&models.BlogTag{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	db := database.New(gormDB)
	bus := notify.NewBus()

	router := chi.NewRouter()
	handlers := initializeHandlers(db, bus, nil)
	setupRoutes(router, handlers, newSessionMiddleware(db.SessionRepo()), newAdminMiddleware(db.UserRepo()))

	return &testAPI{router: router, db: db, gorm: gormDB, bus: bus}
}

// do runs one request through the router. A nil body sends no payload; a
// non-nil cookie authenticates the request.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its session cookie.
func (a *testAPI) register(t *testing.T, username string) *http.Cookie {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter2hunter2",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %q: status %d, body %s", username, rec.Code, rec.Body.String())
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("register %q: no session cookie issued", username)
	return nil
}

// createProject posts a minimal project and returns its id.
func (a *testAPI) createProject(t *testing.T, cookie *http.Cookie, title string, private bool, tags ...string) uint {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/projects", map[string]interface{}{
		"title":       title,
		"description": title + " description",
		"isPrivate":   private,
		"tags":        tags,
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project %q: status %d, body %s", title, rec.Code, rec.Body.String())
	}

	var resp struct {
		Project struct {
			ID uint `json:"id"`
		} `json:"project"`
	}
	decodeBody(t, rec, &resp)
	return resp.Project.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("failed to decode response %s: %v", rec.Body.String(), err)
	}
}

func projectPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/projects/%d%s", id, suffix)
}
