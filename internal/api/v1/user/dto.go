package user

import (
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/models"
)

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID                  uint        `json:"id"`
	Email               string      `json:"email"`
	Name                string      `json:"name"`
	Role                string      `json:"role"`
	Board               string      `json:"board,omitempty"`
	ClassLevel          string      `json:"classLevel,omitempty"`
	Stream              string      `json:"stream,omitempty"`
	Credits             int         `json:"credits"`
	IsPremium           bool        `json:"isPremium"`
	SubscriptionLevel   string      `json:"subscriptionLevel"`
	SubscriptionEndDate *time.Time  `json:"subscriptionEndDate,omitempty"`
	IsAutoDeductEnabled bool        `json:"isAutoDeductEnabled"`
	Progress            models.JSON `json:"progress,omitempty"`
	Token               string      `json:"token,omitempty"`
}

// NewUserResponse maps a user record onto the API shape.
func NewUserResponse(u *models.User, token string) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                u.Role,
		Board:               u.Board,
		ClassLevel:          u.ClassLevel,
		Stream:              u.Stream,
		Credits:             u.Credits,
		IsPremium:           u.IsPremium,
		SubscriptionLevel:   u.SubscriptionLevel,
		SubscriptionEndDate: u.SubscriptionEndDate,
		IsAutoDeductEnabled: u.IsAutoDeductEnabled,
		Progress:            u.Progress,
		Token:               token,
	}
}

// ProgressInput advances the caller's progress in one subject.
type ProgressInput struct {
	Subject             string `json:"subject" binding:"required"`
	CurrentChapterIndex int    `json:"currentChapterIndex" binding:"min=0"`
	TotalMCQsSolved     int    `json:"totalMCQsSolved" binding:"min=0"`
}
