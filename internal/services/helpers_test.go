package services_test

import (
	"testing"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestEnv wires in-memory SQLite and miniredis behind the package
// globals so service code runs against the same stores it uses in
// production.
func setupTestEnv(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.User{}, &models.Transaction{}, &models.Chapter{}, &models.ContentDocument{})
	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}, &models.Chapter{}, &models.ContentDocument{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM chapters")
	db.Exec("DELETE FROM content_documents")

	database.DB = db

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store.LocalCache.Flush()
	return mr
}
