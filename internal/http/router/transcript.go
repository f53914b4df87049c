package router

import (
	"github.com/gin-gonic/gin"

	"github.com/faizanfirdousi/roast-my-gpa/internal/http/handler"
)

func TranscriptRouter(rg *gin.RouterGroup, h *handler.TranscriptHandler) {
	rg.GET("/", h.Index)
	rg.POST("/upload", h.Upload)
	rg.POST("/extract", h.Extract)
}
