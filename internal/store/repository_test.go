package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStores(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	db.Migrator().DropTable(&models.ContentDocument{})
	require.NoError(t, db.AutoMigrate(&models.ContentDocument{}))
	db.Exec("DELETE FROM content_documents")
	database.DB = db

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store.LocalCache.Flush()
	return mr
}

func TestWriteRawPersistsEveryTier(t *testing.T) {
	mr := setupStores(t)
	ctx := context.Background()
	key := store.DeriveContentKey("CBSE", "10", "", "math", "ch1")

	store.WriteRaw(ctx, key, []byte(`{"lessonText":"intro"}`))

	// Fast store holds the record.
	val, err := mr.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, `{"lessonText":"intro"}`, val)

	// Durable store holds the record.
	var doc models.ContentDocument
	assert.NoError(t, database.DB.First(&doc, "key = ?", key).Error)
	assert.JSONEq(t, `{"lessonText":"intro"}`, string(doc.Data))
}

func TestReadRawFallsThroughToDurable(t *testing.T) {
	mr := setupStores(t)
	ctx := context.Background()
	key := store.DeriveContentKey("CBSE", "10", "", "math", "ch2")

	store.WriteRaw(ctx, key, []byte(`{"lessonText":"fallback"}`))

	// Evict the faster tiers; only the durable copy remains.
	store.LocalCache.Flush()
	mr.FlushAll()

	got := store.ReadRaw(ctx, key)
	assert.Equal(t, []byte(`{"lessonText":"fallback"}`), got)
}

func TestReadRawSurvivesFastStoreOutage(t *testing.T) {
	mr := setupStores(t)
	ctx := context.Background()
	key := store.DeriveContentKey("CBSE", "10", "", "math", "ch3")

	store.WriteRaw(ctx, key, []byte(`{"lessonText":"resilient"}`))
	store.LocalCache.Flush()

	// Fast store goes dark: reads still succeed via the durable store.
	mr.Close()

	got := store.ReadRaw(ctx, key)
	assert.Equal(t, []byte(`{"lessonText":"resilient"}`), got)
}

func TestReadRawMissingKeyIsNil(t *testing.T) {
	setupStores(t)

	got := store.ReadRaw(context.Background(), "content_data_v3_CBSE_10_math_nope")
	assert.Nil(t, got)
}

func TestMergeContentPreservesSiblingSections(t *testing.T) {
	setupStores(t)
	ctx := context.Background()
	key := store.DeriveContentKey("CBSE", "12", "Science", "physics", "ch5")

	_, err := store.MergeContent(ctx, key, &models.ContentRecord{LessonText: "kinematics"})
	require.NoError(t, err)

	price := 7
	_, err = store.MergeContent(ctx, key, &models.ContentRecord{
		PremiumLink: "https://cdn.example.com/notes.pdf",
		Price:       &price,
	})
	require.NoError(t, err)

	rec := store.ReadContent(ctx, key)
	require.NotNil(t, rec)
	assert.Equal(t, "kinematics", rec.LessonText)
	assert.Equal(t, "https://cdn.example.com/notes.pdf", rec.PremiumLink)
	require.NotNil(t, rec.Price)
	assert.Equal(t, 7, *rec.Price)
}

func TestSubscribeSeedsAndStreams(t *testing.T) {
	setupStores(t)
	ctx := context.Background()
	key := store.DeriveContentKey("CBSE", "9", "", "math", "ch1")

	store.WriteRaw(ctx, key, []byte(`{"lessonText":"seed"}`))

	updates := make(chan []byte, 4)
	unsubscribe, err := store.Subscribe(ctx, key, func(data []byte) {
		updates <- data
	})
	require.NoError(t, err)
	defer unsubscribe()

	// The current value arrives before any live update.
	select {
	case data := <-updates:
		assert.JSONEq(t, `{"lessonText":"seed"}`, string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for seed value")
	}

	store.WriteRaw(ctx, key, []byte(`{"lessonText":"live"}`))

	select {
	case data := <-updates:
		assert.JSONEq(t, `{"lessonText":"live"}`, string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for live update")
	}

	// Double teardown is safe.
	unsubscribe()
	unsubscribe()
}
