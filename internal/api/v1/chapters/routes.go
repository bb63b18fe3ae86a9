package chapters

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the learner-facing chapter routes.
func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/chapters", ListChapters)
}

// RegisterAdminRoutes mounts the chapter management routes.
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/chapters", CreateChapter)
	router.PUT("/chapters/:id", UpdateChapter)
	router.DELETE("/chapters/:id", DeleteChapter)
}
