package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserListItem struct {
	ID                  uint       `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Role                string     `json:"role"`
	Board               string     `json:"board,omitempty"`
	ClassLevel          string     `json:"classLevel,omitempty"`
	Stream              string     `json:"stream,omitempty"`
	Credits             int        `json:"credits"`
	SubscriptionLevel   string     `json:"subscriptionLevel"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate,omitempty"`
	Online              bool       `json:"online"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func newUserListItem(u *models.User, now time.Time) UserListItem {
	return UserListItem{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                u.Role,
		Board:               u.Board,
		ClassLevel:          u.ClassLevel,
		Stream:              u.Stream,
		Credits:             u.Credits,
		SubscriptionLevel:   u.SubscriptionLevel,
		SubscriptionEndDate: u.SubscriptionEndDate,
		Online:              services.IsOnline(u.LastActiveTime, now),
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// ListUsers godoc
// @Summary List all users
// @Description Get a paginated list of learners. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=UserListResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/users [get]
func ListUsers(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return
	}

	users, total, err := services.FindUsers(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch users"))
		return
	}

	now := time.Now()
	var userItems []UserListItem
	for i := range users {
		userItems = append(userItems, newUserListItem(&users[i], now))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", UserListResponse{
		Users: userItems,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name                *string    `json:"name,omitempty"`
	Password            *string    `json:"password,omitempty" binding:"omitempty,min=6"`
	Role                *string    `json:"role,omitempty" binding:"omitempty,oneof=ADMIN LEARNER"`
	SubscriptionLevel   *string    `json:"subscriptionLevel,omitempty" binding:"omitempty,oneof=NONE PREMIUM ULTRA"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate,omitempty"`
}

// UpdateUser godoc
// @Summary Update a user
// @Description Update learner details including subscription tier. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param body body UpdateUserRequest true "User details to update"
// @Success 200 {object} utils.Response{data=UserListItem}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.SubscriptionLevel != nil {
		updates["subscription_level"] = *req.SubscriptionLevel
		updates["is_premium"] = *req.SubscriptionLevel != models.TierNone
	}
	if req.SubscriptionEndDate != nil {
		updates["subscription_end_date"] = *req.SubscriptionEndDate
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "No fields to update"))
		return
	}

	updatedUser, err := services.UpdateUser(uint(id), updates, operatorName(c))
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		if err == services.ErrOptimisticLock {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update user"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User updated successfully", newUserListItem(updatedUser, time.Now())))
}

// AdjustCreditsRequest grants or removes credits with an audit reason.
type AdjustCreditsRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// AdjustCredits godoc
// @Summary Adjust a user's credits
// @Description Grants (positive delta) or removes (negative delta) credits and records a ledger entry. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param body body AdjustCreditsRequest true "Adjustment details"
// @Success 200 {object} utils.Response{data=UserListItem}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/users/{id}/credits [post]
func AdjustCredits(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return
	}

	var req AdjustCreditsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	operator, operatorID := operatorIdentity(c)
	updated, err := services.AdjustCredits(uint(id), req.Delta, req.Reason, operator, operatorID)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		case services.ErrOptimisticLock:
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		case services.ErrInvalidAmount, services.ErrInsufficientCredits:
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to adjust credits"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Credits adjusted successfully", newUserListItem(updated, time.Now())))
}

// RefundCreditsRequest restores credits after a reported content failure.
type RefundCreditsRequest struct {
	Amount int    `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required"`
}

// RefundCredits godoc
// @Summary Refund credits to a user
// @Description Returns previously debited credits and records a refund ledger entry. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param body body RefundCreditsRequest true "Refund details"
// @Success 200 {object} utils.Response{data=UserListItem}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/users/{id}/credits/refund [post]
func RefundCredits(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return
	}

	var req RefundCreditsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	operator, operatorID := operatorIdentity(c)
	updated, err := services.RefundCredits(uint(id), req.Amount, req.Reason, operator, operatorID)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		case services.ErrOptimisticLock:
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to refund credits"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Credits refunded successfully", newUserListItem(updated, time.Now())))
}

func operatorName(c *gin.Context) string {
	name, _ := operatorIdentity(c)
	return name
}

func operatorIdentity(c *gin.Context) (string, uint) {
	if userVal, exists := c.Get("user"); exists {
		if u, ok := userVal.(models.User); ok {
			return u.Email, u.ID
		}
	}
	return "unknown", 0
}
