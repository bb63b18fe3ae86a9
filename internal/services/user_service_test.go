package services_test

import (
	"encoding/json"
	"testing"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUserByIDPrefersMirror(t *testing.T) {
	mr := setupTestEnv(t)
	user := seedLearner(t, 10)

	// Plant a divergent mirror: the fast-store copy wins on read.
	mirrored := *user
	mirrored.Name = "Mirrored"
	data, err := json.Marshal(mirrored)
	require.NoError(t, err)
	mr.Set(store.UserKey(user.ID), string(data))

	got, err := services.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mirrored", got.Name)
}

func TestFindUserByIDFallsBackAndReseeds(t *testing.T) {
	mr := setupTestEnv(t)
	user := seedLearner(t, 10)

	got, err := services.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	// The durable hit re-seeded the mirror.
	raw, err := mr.Get(store.UserKey(user.ID))
	require.NoError(t, err)
	var mirrored models.User
	require.NoError(t, json.Unmarshal([]byte(raw), &mirrored))
	assert.Equal(t, user.ID, mirrored.ID)
}

func TestFindUserByEmail(t *testing.T) {
	setupTestEnv(t)
	seedLearner(t, 10)

	got, err := services.FindUserByEmail("learner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Learner", got.Name)

	_, err = services.FindUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUpdateProgress(t *testing.T) {
	setupTestEnv(t)
	user := seedLearner(t, 10)

	updated, err := services.UpdateProgress(user.ID, "math", models.SubjectProgress{
		CurrentChapterIndex: 3,
		TotalMCQsSolved:     12,
	})
	require.NoError(t, err)

	progress := updated.ProgressFor("math")
	assert.Equal(t, 3, progress.CurrentChapterIndex)
	assert.Equal(t, 12, progress.TotalMCQsSolved)

	// Progress in other subjects stays zero-valued.
	assert.Zero(t, updated.ProgressFor("science").CurrentChapterIndex)

	var persisted models.User
	require.NoError(t, database.DB.First(&persisted, user.ID).Error)
	assert.Equal(t, 3, persisted.ProgressFor("math").CurrentChapterIndex)
}

func TestUpdateUserAdvancesVersion(t *testing.T) {
	setupTestEnv(t)
	user := seedLearner(t, 10)

	updated, err := services.UpdateUser(user.ID, map[string]interface{}{"name": "Renamed"}, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	// The version guard advances on every write, so a concurrent writer
	// holding the old version loses.
	assert.Equal(t, user.Version+1, updated.Version)
}

func TestIsUserDatabaseEmpty(t *testing.T) {
	setupTestEnv(t)

	empty, err := services.IsUserDatabaseEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	seedLearner(t, 0)

	empty, err = services.IsUserDatabaseEmpty()
	require.NoError(t, err)
	assert.False(t, empty)
}
