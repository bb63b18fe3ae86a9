package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/api/v1/admin/user"
	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	// Drop tables if exist to ensure clean state and schema update
	db.Migrator().DropTable(&models.User{}, &models.Transaction{})

	// Migrate schema
	err = db.AutoMigrate(&models.User{}, &models.Transaction{})
	if err != nil {
		panic("failed to migrate database")
	}

	// Clean up data
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM transactions")

	// Assign to global DB
	database.DB = db
	database.RedisClient = nil
}

func seedUsers() (models.User, models.User) {
	admin := models.User{
		Email:     "admin@example.com",
		Name:      "Admin",
		Role:      models.RoleAdmin,
		Password:  "hashedpassword",
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	learner := models.User{
		Email:     "learner@example.com",
		Name:      "Learner",
		Role:      models.RoleLearner,
		Password:  "hashedpassword",
		Credits:   10,
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	database.DB.Create(&admin)
	database.DB.Create(&learner)
	return admin, learner
}

func TestListUsers(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)
	seedUsers()

	tests := []struct {
		name           string
		page           string
		limit          string
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:           "Valid Pagination",
			page:           "1",
			limit:          "10",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Code    int                   `json:"status"`
					Message string                `json:"message"`
					Data    user.UserListResponse `json:"data"`
				}
				err := json.Unmarshal(body, &resp)
				assert.NoError(t, err)
				assert.Equal(t, 200, resp.Code)
				assert.NotEmpty(t, resp.Data.Users)
				assert.Equal(t, int64(2), resp.Data.Total)
				// Nobody has touched presence, so nobody is online.
				assert.False(t, resp.Data.Users[0].Online)
			},
		},
		{
			name:           "Invalid Page",
			page:           "0",
			limit:          "10",
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "Invalid page number")
			},
		},
		{
			name:           "Invalid Limit",
			page:           "1",
			limit:          "-1",
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "Invalid limit number")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin/users", user.ListUsers)

			req, _ := http.NewRequest(http.MethodGet, "/admin/users?page="+tt.page+"&limit="+tt.limit, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body.Bytes())
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)
	admin, learner := seedUsers()

	tests := []struct {
		name           string
		targetID       string
		body           map[string]interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:     "Grant Ultra Subscription",
			targetID: strconv.Itoa(int(learner.ID)),
			body: map[string]interface{}{
				"subscriptionLevel":   models.TierUltra,
				"subscriptionEndDate": time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var persisted models.User
				database.DB.First(&persisted, learner.ID)
				assert.Equal(t, models.TierUltra, persisted.SubscriptionLevel)
				assert.True(t, persisted.IsPremium)
				assert.NotNil(t, persisted.SubscriptionEndDate)
			},
		},
		{
			name:           "Invalid Role Rejected",
			targetID:       strconv.Itoa(int(learner.ID)),
			body:           map[string]interface{}{"role": "SUPERUSER"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "No Fields",
			targetID:       strconv.Itoa(int(learner.ID)),
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "User Not Found",
			targetID:       "9999",
			body:           map[string]interface{}{"name": "Ghost"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				c.Set("user", admin)
				c.Next()
			})
			r.PATCH("/admin/users/:id", user.UpdateUser)

			payload, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPatch, "/admin/users/"+tt.targetID, bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body.Bytes())
			}
		})
	}
}

func TestAdjustCredits(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)
	admin, learner := seedUsers()

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("user", admin)
			c.Next()
		})
		r.POST("/admin/users/:id/credits", user.AdjustCredits)
		return r
	}

	t.Run("Grant", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"delta": 15, "reason": "Contest prize"})
		req, _ := http.NewRequest(http.MethodPost,
			"/admin/users/"+strconv.Itoa(int(learner.ID))+"/credits", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var persisted models.User
		database.DB.First(&persisted, learner.ID)
		assert.Equal(t, 25, persisted.Credits)

		var trans models.Transaction
		assert.NoError(t, database.DB.First(&trans, "user_id = ?", learner.ID).Error)
		assert.Equal(t, 15, trans.Amount)
		assert.Equal(t, models.TransactionTypeAdminAdjust, trans.Type)
		assert.Equal(t, admin.Email, trans.Operator)
	})

	t.Run("Deduction below zero rejected", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"delta": -100, "reason": "Penalty"})
		req, _ := http.NewRequest(http.MethodPost,
			"/admin/users/"+strconv.Itoa(int(learner.ID))+"/credits", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing reason rejected", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"delta": 5})
		req, _ := http.NewRequest(http.MethodPost,
			"/admin/users/"+strconv.Itoa(int(learner.ID))+"/credits", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRefundCredits(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)
	admin, learner := seedUsers()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", admin)
		c.Next()
	})
	r.POST("/admin/users/:id/credits/refund", user.RefundCredits)

	payload, _ := json.Marshal(map[string]interface{}{"amount": 3, "reason": "Broken video link"})
	req, _ := http.NewRequest(http.MethodPost,
		"/admin/users/"+strconv.Itoa(int(learner.ID))+"/credits/refund", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var persisted models.User
	database.DB.First(&persisted, learner.ID)
	assert.Equal(t, 13, persisted.Credits)

	var trans models.Transaction
	assert.NoError(t, database.DB.First(&trans, "user_id = ? AND type = ?", learner.ID, models.TransactionTypeUserRefund).Error)
	assert.Equal(t, 3, trans.Amount)
}
