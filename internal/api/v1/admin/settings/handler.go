package settings

import (
	"net/http"

	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"github.com/gin-gonic/gin"
)

// SettingsInput carries the full settings document. Partial updates are
// not supported; the admin panel always submits the whole form.
type SettingsInput struct {
	RestrictionEnabled bool `json:"enableMcqUnlockRestriction"`
	DefaultVideoCost   int  `json:"defaultVideoCost" binding:"min=0"`
	DefaultPdfCost     int  `json:"defaultPdfCost" binding:"min=0"`
	McqTestCost        int  `json:"mcqTestCost" binding:"min=0"`
	DefaultCredits     int  `json:"defaultCredits" binding:"min=0"`
}

// GetSettings godoc
// @Summary Get platform settings
// @Description Returns the current platform settings document. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=models.SystemSettings}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/settings [get]
func GetSettings(c *gin.Context) {
	s := services.GetSettings(c.Request.Context())
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Settings retrieved", s))
}

// UpdateSettings godoc
// @Summary Update platform settings
// @Description Replaces the platform settings document. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param settings body SettingsInput true "Settings document"
// @Success 200 {object} utils.Response{data=models.SystemSettings}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/settings [put]
func UpdateSettings(c *gin.Context) {
	var input SettingsInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	updated := models.SystemSettings{
		RestrictionEnabled: input.RestrictionEnabled,
		DefaultVideoCost:   input.DefaultVideoCost,
		DefaultPdfCost:     input.DefaultPdfCost,
		McqTestCost:        input.McqTestCost,
		DefaultCredits:     input.DefaultCredits,
	}
	if err := services.SaveSettings(c.Request.Context(), updated); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save settings"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Settings updated", updated))
}
