package monitor

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/monitor/online", OnlineUsers)
}
