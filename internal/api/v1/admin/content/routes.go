package content

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.PUT("/content", SaveContent)
	router.POST("/content/links", ImportLinks)
	router.POST("/content/mcqs", ImportMCQs)
}
