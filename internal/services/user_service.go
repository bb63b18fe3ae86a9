package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/store"
	"github.com/f57725199-cmyk/stuadm/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")
var ErrOptimisticLock = errors.New("data has been modified by another user, please refresh and try again")

// FindUserByID reads a user record, fast store first. The durable store is
// the source of truth; a hit there re-seeds the fast-store mirror.
func FindUserByID(userID uint) (models.User, error) {
	mirrorKey := store.UserKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, mirrorKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return user, err
	}

	mirrorUser(&user)
	return user, nil
}

// FindUserByEmail looks a user up in the durable store only; email is not a
// mirror key.
func FindUserByEmail(email string) (models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}

// SaveUser dual-writes the user snapshot: durable row plus fast-store
// mirror, best effort on the mirror side.
func SaveUser(user *models.User) error {
	if err := database.DB.Save(user).Error; err != nil {
		return err
	}
	mirrorUser(user)
	return nil
}

func mirrorUser(user *models.User) {
	if database.RedisClient == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := database.RedisClient.Set(database.Ctx, store.UserKey(user.ID), data, time.Hour).Err(); err != nil {
		logger.Log.Warn("user mirror write failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}

// InvalidateUserMirror drops the fast-store copy so the next read hits the
// durable store.
func InvalidateUserMirror(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, store.UserKey(userID))
	}
}

// IsUserDatabaseEmpty reports whether no user has ever signed up. The first
// account in an empty database becomes the admin.
func IsUserDatabaseEmpty() (bool, error) {
	var count int64
	if err := database.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// FindUsers retrieves a paginated list of users.
func FindUsers(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	offset := (page - 1) * limit

	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := database.DB.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUser updates a user with optimistic locking and selective fields.
func UpdateUser(id uint, updates map[string]interface{}, operator string) (*models.User, error) {
	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Password handling
	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		updates["password"] = string(hashedPassword)
	}

	// Optimistic Lock Check
	currentVersion := user.Version
	updates["version"] = currentVersion + 1

	// Where("version = ?", currentVersion) makes the update atomic with the
	// version check
	result := tx.Model(&user).Where("version = ?", currentVersion).Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrOptimisticLock
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Log.Info("user updated",
		zap.Uint("user_id", id), zap.String("operator", operator))

	// Fetch updated user and refresh the fast-store mirror
	database.DB.First(&user, id)
	mirrorUser(&user)

	return &user, nil
}

// UpdateProgress advances a learner's per-subject progress and dual-writes
// the snapshot.
func UpdateProgress(userID uint, subjectID string, progress models.SubjectProgress) (*models.User, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.SetProgress(subjectID, progress)
	if err := SaveUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
