package services

import (
	"errors"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm" // Import gorm for ErrRecordNotFound
)

var ErrUserAlreadyExists = errors.New("user with this email already exists")

type RegisterParams struct {
	Email      string
	Password   string
	Name       string
	Board      string
	ClassLevel string
	Stream     string
}

// RegisterUser creates an account on first sign-in. The first account in an
// empty database becomes the admin; everyone else is a learner seeded with
// the default credit grant from settings.
func RegisterUser(params RegisterParams, settings models.SystemSettings) (*models.User, error) {
	var existingUser models.User
	result := database.DB.Where("email = ?", params.Email).First(&existingUser)
	if result.Error == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	empty, err := IsUserDatabaseEmpty()
	if err != nil {
		return nil, err
	}

	role := models.RoleLearner
	if empty {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:             params.Email,
		Password:          string(hashedPassword),
		Name:              params.Name,
		Role:              role,
		Board:             params.Board,
		ClassLevel:        params.ClassLevel,
		Stream:            params.Stream,
		Credits:           settings.DefaultCredits,
		SubscriptionLevel: models.TierNone,
		Progress:          models.JSON{},
	}

	if err := SaveUser(user); err != nil {
		return nil, err
	}

	if user.Credits > 0 {
		recordTransaction(user, user.Credits, 0, "Signup bonus", "system", 0,
			models.TransactionTypeSignupBonus, "", "")
	}

	return user, nil
}

func LoginUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}
