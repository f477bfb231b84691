package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"github.com/vibehub/showcase-backend/models"
)

func TestRecord_LifetimeAndMonthlyMoveTogether(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectViewRepo(db)

	alice := createTestUser(t, db, "alice")
	project := createTestProject(t, db, alice.ID, "viewed")

	at := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx(), project.ID, at))
	require.NoError(t, repo.Record(ctx(), project.ID, at))

	var reloaded models.Project
	require.NoError(t, db.First(&reloaded, project.ID).Error)
	assert.Equal(t, int64(2), reloaded.ViewsCount)

	monthly, err := repo.MonthlyCount(ctx(), project.ID, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(2), monthly)

	// Exactly one aggregate row for the month, upserted in place
	var rows int64
	require.NoError(t, db.Model(&models.ProjectView{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRecord_MonthsAreSeparate(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectViewRepo(db)

	alice := createTestUser(t, db, "alice")
	project := createTestProject(t, db, alice.ID, "viewed")

	march := time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 1, 1, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx(), project.ID, march))
	require.NoError(t, repo.Record(ctx(), project.ID, april))
	require.NoError(t, repo.Record(ctx(), project.ID, april))

	marchCount, err := repo.MonthlyCount(ctx(), project.ID, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marchCount)

	aprilCount, err := repo.MonthlyCount(ctx(), project.ID, 4, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(2), aprilCount)

	var reloaded models.Project
	require.NoError(t, db.First(&reloaded, project.ID).Error)
	assert.Equal(t, int64(3), reloaded.ViewsCount)
}

func TestRecord_UnknownProject(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectViewRepo(db)

	err := repo.Record(ctx(), 999, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Nothing was written
	var rows int64
	require.NoError(t, db.Model(&models.ProjectView{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestMonthlyCount_MissingRowIsZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectViewRepo(db)

	count, err := repo.MonthlyCount(ctx(), 1, 1, 2026)
	require.NoError(t, err)
	assert.Zero(t, count)
}
