package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizanfirdousi/roast-my-gpa/internal/http/handler"
	"github.com/faizanfirdousi/roast-my-gpa/internal/pdftext"
	"github.com/faizanfirdousi/roast-my-gpa/internal/service"
)

type RouterConfig struct {
	MaxUploadBytes int64
	PDF            pdftext.Extractor
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pdf := cfg.PDF
	if pdf == nil {
		pdf = pdftext.NewExtractor()
	}

	api := router.Group("/api")
	{
		transcriptHandler := handler.NewTranscriptHandler(services.Roasts(), services.Extracts(), pdf, cfg.MaxUploadBytes)
		TranscriptRouter(api, transcriptHandler)
	}
}
