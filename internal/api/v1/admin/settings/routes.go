package settings

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", GetSettings)
	router.PUT("/settings", UpdateSettings)
}
