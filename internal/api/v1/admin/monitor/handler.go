package monitor

import (
	"net/http"

	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"github.com/gin-gonic/gin"
)

// OnlineUsers godoc
// @Summary List online users
// @Description Returns users active within the last five minutes, most recent first. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param filter query string false "Substring match on name or email"
// @Success 200 {object} utils.Response{data=services.OnlineUsersResult}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/monitor/online [get]
func OnlineUsers(c *gin.Context) {
	result, err := services.OnlineUsers(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch online users"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Online users retrieved", result))
}
