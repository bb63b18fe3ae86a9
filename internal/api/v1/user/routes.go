package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	user.GET("/me", CurrentUser)
	user.POST("/touch", Touch)
	user.PUT("/progress", UpdateProgress)
}
