package content

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	content := router.Group("/content")
	content.GET("", GetContent)
	content.POST("/unlock", Unlock)
}
