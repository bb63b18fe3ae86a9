package services_test

import (
	"testing"
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOnline(t *testing.T) {
	now := time.Now()

	fourMinAgo := now.Add(-4 * time.Minute)
	sixMinAgo := now.Add(-6 * time.Minute)
	exactlyWindow := now.Add(-services.OnlineWindow)

	assert.True(t, services.IsOnline(&fourMinAgo, now))
	assert.False(t, services.IsOnline(&sixMinAgo, now))
	assert.False(t, services.IsOnline(&exactlyWindow, now))
	assert.False(t, services.IsOnline(nil, now))
}

func TestTouchPresenceWritesFastStoreOnly(t *testing.T) {
	mr := setupTestEnv(t)
	user := seedLearner(t, 0)

	require.NoError(t, services.TouchPresence(user.ID))

	val, err := mr.Get(store.PresenceKey(user.ID))
	require.NoError(t, err)
	parsed, err := time.Parse(time.RFC3339, val)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)

	// The durable record is untouched; presence is fast-store only.
	var persisted models.User
	require.NoError(t, database.DB.First(&persisted, user.ID).Error)
	assert.Nil(t, persisted.LastActiveTime)
}

func TestOnlineUsers(t *testing.T) {
	mr := setupTestEnv(t)

	active := models.User{Email: "active@example.com", Password: "x", Name: "Asha", Role: models.RoleLearner}
	stale := models.User{Email: "stale@example.com", Password: "x", Name: "Ravi", Role: models.RoleLearner}
	require.NoError(t, database.DB.Create(&active).Error)
	require.NoError(t, database.DB.Create(&stale).Error)

	now := time.Now().UTC()
	mr.Set(store.PresenceKey(active.ID), now.Add(-time.Minute).Format(time.RFC3339))
	mr.Set(store.PresenceKey(stale.ID), now.Add(-10*time.Minute).Format(time.RFC3339))

	result, err := services.OnlineUsers("")
	require.NoError(t, err)

	assert.Equal(t, 1, result.OnlineCount)
	require.Len(t, result.Users, 2)
	// Most recently active first.
	assert.Equal(t, active.ID, result.Users[0].ID)
	assert.True(t, result.Users[0].Online)
	assert.False(t, result.Users[1].Online)
}

func TestOnlineUsersFallsBackToDurableTimestamp(t *testing.T) {
	mr := setupTestEnv(t)

	now := time.Now().UTC()
	durableOnly := now.Add(-2 * time.Minute)
	fresh := models.User{Email: "fresh@example.com", Password: "x", Name: "Asha", Role: models.RoleLearner}
	seen := models.User{Email: "seen@example.com", Password: "x", Name: "Ravi", Role: models.RoleLearner, LastActiveTime: &durableOnly}
	require.NoError(t, database.DB.Create(&fresh).Error)
	require.NoError(t, database.DB.Create(&seen).Error)

	// Only one of the two has a fast-store entry.
	mr.Set(store.PresenceKey(fresh.ID), now.Add(-time.Minute).Format(time.RFC3339))

	result, err := services.OnlineUsers("")
	require.NoError(t, err)

	assert.Equal(t, 2, result.OnlineCount)
	require.Len(t, result.Users, 2)
	assert.Equal(t, fresh.ID, result.Users[0].ID)
	assert.Equal(t, seen.ID, result.Users[1].ID)
	require.NotNil(t, result.Users[1].LastActiveTime)
	assert.WithinDuration(t, durableOnly, *result.Users[1].LastActiveTime, time.Second)
}

func TestOnlineUsersFilter(t *testing.T) {
	setupTestEnv(t)

	u1 := models.User{Email: "asha@example.com", Password: "x", Name: "Asha", Role: models.RoleLearner}
	u2 := models.User{Email: "ravi@example.com", Password: "x", Name: "Ravi", Role: models.RoleLearner}
	require.NoError(t, database.DB.Create(&u1).Error)
	require.NoError(t, database.DB.Create(&u2).Error)

	result, err := services.OnlineUsers("asha")
	require.NoError(t, err)
	require.Len(t, result.Users, 1)
	assert.Equal(t, "Asha", result.Users[0].Name)
}
