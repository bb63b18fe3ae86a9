package user

import (
	"net/http"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get current user's information
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /user/me [get]
func CurrentUser(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	u := user.(models.User)

	// Force reload from the durable store so the balance reflects debits
	// made since the middleware cached this record
	var latestUser models.User
	if err := database.DB.First(&latestUser, u.ID).Error; err == nil {
		u = latestUser
	}

	token, err := utils.GenerateToken(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", NewUserResponse(&u, token)))
}

// Touch godoc
// @Summary Mark the caller as active
// @Description Writes the caller's last-active timestamp to the fast store. Clients call this on a timer while a view is mounted.
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /user/touch [post]
func Touch(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	u := user.(models.User)
	if err := services.TouchPresence(u.ID); err != nil {
		// Liveness is best effort; an unreachable fast store is not a
		// failure the client can act on.
		c.JSON(http.StatusOK, utils.NewSuccessResponse("OK", nil))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("OK", nil))
}

// UpdateProgress godoc
// @Summary Update subject progress
// @Description Advance the caller's per-subject syllabus progress
// @Tags user
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   input body ProgressInput true "Progress Input"
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /user/progress [put]
func UpdateProgress(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var input ProgressInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u := user.(models.User)
	updated, err := services.UpdateProgress(u.ID, input.Subject, models.SubjectProgress{
		CurrentChapterIndex: input.CurrentChapterIndex,
		TotalMCQsSolved:     input.TotalMCQsSolved,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update progress"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Progress updated", NewUserResponse(updated, "")))
}
