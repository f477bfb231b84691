package database

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vibehub/showcase-backend/models"
)

// newTestDB opens an in-memory database with the full schema. The pool is
// capped at one connection: every :memory: connection is a separate database,
// and the enrichment queries run concurrently.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
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

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return &user
}

type projectOpt func(*models.Project)

func asPrivate() projectOpt {
	return func(p *models.Project) { p.IsPrivate = true }
}

func createdAt(at time.Time) projectOpt {
	return func(p *models.Project) { p.CreatedAt = at }
}

func createTestProject(t *testing.T, db *gorm.DB, authorID uint, title string, opts ...projectOpt) *models.Project {
	t.Helper()
	project := models.Project{
		Title:       title,
		Description: title + " description",
		AuthorID:    authorID,
	}
	for _, opt := range opts {
		opt(&project)
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create test project %q: %v", title, err)
	}
	return &project
}

// setMonthlyViews writes the project's view aggregate for the current month
// directly, bypassing Record.
func setMonthlyViews(t *testing.T, db *gorm.DB, projectID uint, count int64) {
	t.Helper()
	now := time.Now()
	view := models.ProjectView{
		ProjectID: projectID,
		Month:     int(now.Month()),
		Year:      now.Year(),
		Count:     count,
	}
	if err := db.Create(&view).Error; err != nil {
		t.Fatalf("failed to set monthly views: %v", err)
	}
}

func ctx() context.Context {
	return context.Background()
}
