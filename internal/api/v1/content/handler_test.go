package content_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	contentapi "github.com/f57725199-cmyk/stuadm/internal/api/v1/content"
	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	db.Migrator().DropTable(&models.User{}, &models.Transaction{}, &models.ContentDocument{})
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Transaction{}, &models.ContentDocument{}))
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM content_documents")
	database.DB = db

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store.LocalCache.Flush()
}

// newRouter reloads the user from the durable store per request, the same
// way the auth middleware does.
func newRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		var u models.User
		if err := database.DB.First(&u, userID).Error; err == nil {
			c.Set("user", u)
		}
		c.Next()
	})
	r.GET("/content", contentapi.GetContent)
	r.POST("/content/unlock", contentapi.Unlock)
	return r
}

func seedContent(t *testing.T, price int) services.ContentRef {
	t.Helper()
	ref := services.ContentRef{Board: "CBSE", ClassLevel: "10", Subject: "physics", ChapterID: "ch1"}
	_, err := services.SaveChapterContent(context.Background(), ref, &models.ContentRecord{
		LessonText:  "Motion basics",
		PremiumLink: "https://cdn.example.com/premium.pdf",
		Price:       &price,
		VideoPlaylist: []models.VideoItem{
			{Title: "Intro", URL: "https://videos.example.com/1"},
		},
		ManualMCQData: []models.MCQItem{
			{Question: "Q1?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0},
		},
	})
	require.NoError(t, err)
	return ref
}

func createUser(t *testing.T, role string, credits int, autoDeduct bool) *models.User {
	t.Helper()
	u := models.User{
		Email:               "u@example.com",
		Password:            "hashedpassword",
		Name:                "U",
		Role:                role,
		Credits:             credits,
		IsAutoDeductEnabled: autoDeduct,
		Version:             1,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return &u
}

type unlockEnvelope struct {
	Status  int                       `json:"status"`
	Message string                    `json:"message"`
	Data    contentapi.UnlockResponse `json:"data"`
}

func postUnlock(t *testing.T, r *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/content/unlock", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func unlockBody(itemType string) map[string]interface{} {
	return map[string]interface{}{
		"board":      "CBSE",
		"classLevel": "10",
		"subject":    "physics",
		"chapterId":  "ch1",
		"itemType":   itemType,
	}
}

func TestGetContentRedactsLockedURLs(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleLearner, 10, false)
	r := newRouter(u.ID)

	req := httptest.NewRequest(http.MethodGet,
		"/content?board=CBSE&classLevel=10&subject=physics&chapterId=ch1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data contentapi.ContentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Motion basics", resp.Data.LessonText)
	// Priced URLs never appear until unlocked.
	assert.Empty(t, resp.Data.PremiumLink)
	require.Len(t, resp.Data.Videos, 1)
	assert.Empty(t, resp.Data.Videos[0].URL)
	assert.Equal(t, services.AccessPay, resp.Data.Videos[0].Access.Verdict)
	assert.Equal(t, 1, resp.Data.McqCount)
	assert.Empty(t, resp.Data.McqQuestions)
}

func TestGetContentAdminSeesEverything(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleAdmin, 0, false)
	r := newRouter(u.ID)

	req := httptest.NewRequest(http.MethodGet,
		"/content?board=CBSE&classLevel=10&subject=physics&chapterId=ch1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data contentapi.ContentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.example.com/premium.pdf", resp.Data.PremiumLink)
	require.Len(t, resp.Data.Videos, 1)
	assert.Equal(t, "https://videos.example.com/1", resp.Data.Videos[0].URL)
	// The question bank is readable for editing.
	require.Len(t, resp.Data.McqQuestions, 1)
	assert.Equal(t, "Q1?", resp.Data.McqQuestions[0].Question)
}

func TestGetContentEmptyChapterFlagsAdminEdit(t *testing.T) {
	setupTestDB(t)
	u := createUser(t, models.RoleAdmin, 0, false)
	r := newRouter(u.ID)

	req := httptest.NewRequest(http.MethodGet,
		"/content?board=CBSE&classLevel=10&subject=physics&chapterId=nothing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data contentapi.ContentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Empty)
	assert.True(t, resp.Data.EditRequired)
}

func TestUnlockRequiresConfirmationWithoutAutoDeduct(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleLearner, 10, false)
	r := newRouter(u.ID)

	w := postUnlock(t, r, unlockBody("pdf"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp unlockEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.ConfirmationRequired)
	assert.False(t, resp.Data.Unlocked)
	assert.Equal(t, 5, resp.Data.Price)

	// No debit happened.
	var persisted models.User
	require.NoError(t, database.DB.First(&persisted, u.ID).Error)
	assert.Equal(t, 10, persisted.Credits)
}

func TestUnlockConfirmedDebitsAndReturnsURL(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleLearner, 10, false)
	r := newRouter(u.ID)

	body := unlockBody("pdf")
	body["confirm"] = true
	w := postUnlock(t, r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp unlockEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Unlocked)
	assert.Equal(t, "https://cdn.example.com/premium.pdf", resp.Data.URL)
	assert.Equal(t, 5, resp.Data.Credits)

	var persisted models.User
	require.NoError(t, database.DB.First(&persisted, u.ID).Error)
	assert.Equal(t, 5, persisted.Credits)
}

func TestUnlockAutoDeductSkipsConfirmation(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleLearner, 10, true)
	r := newRouter(u.ID)

	body := unlockBody("video")
	idx := 0
	body["videoIndex"] = idx
	w := postUnlock(t, r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp unlockEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Unlocked)
	assert.Equal(t, "https://videos.example.com/1", resp.Data.URL)
}

func TestUnlockMcqTestDeliversQuestions(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleLearner, 10, true)
	r := newRouter(u.ID)

	w := postUnlock(t, r, unlockBody("mcq_test"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp unlockEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Unlocked)
	assert.Equal(t, 2, resp.Data.Price)
	assert.Equal(t, 8, resp.Data.Credits)
	// The paid-for deliverable is the question set itself.
	require.Len(t, resp.Data.Questions, 1)
	assert.Equal(t, "Q1?", resp.Data.Questions[0].Question)
	assert.Equal(t, []string{"A", "B", "C", "D"}, resp.Data.Questions[0].Options)

	var persisted models.User
	require.NoError(t, database.DB.First(&persisted, u.ID).Error)
	assert.Equal(t, 8, persisted.Credits)
}

func TestUnlockInsufficientCredits(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleLearner, 2, true)
	r := newRouter(u.ID)

	w := postUnlock(t, r, unlockBody("pdf"))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient Credits! You need 5 coins.")
}

func TestUnlockMissingChapter(t *testing.T) {
	setupTestDB(t)
	u := createUser(t, models.RoleLearner, 10, false)
	r := newRouter(u.ID)

	w := postUnlock(t, r, unlockBody("pdf"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Coming Soon")
}

func TestUnlockAdminIsFree(t *testing.T) {
	setupTestDB(t)
	seedContent(t, 5)
	u := createUser(t, models.RoleAdmin, 0, false)
	r := newRouter(u.ID)

	w := postUnlock(t, r, unlockBody("pdf"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp unlockEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Unlocked)
	assert.Equal(t, "https://cdn.example.com/premium.pdf", resp.Data.URL)
}
