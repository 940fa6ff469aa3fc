package handler

import (
	"github.com/gamassss/brevly/internal/middleware"
	"github.com/gamassss/brevly/internal/web"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	CORSAllowedOrigin string
}

func NewRouter(
	cfg RouterConfig,
	shortenerHandler *ShortenerHandler,
	healthHandler *HealthHandler,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	// health check
	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)

	links := router.Group("/shortened-links")
	{
		links.POST("", shortenerHandler.CreateShortenedLink)
		links.GET("", shortenerHandler.ListShortenedLinks)
		links.GET("/export/csv", shortenerHandler.ExportShortenedLinksCSV)
		links.GET("/shortened/:shortenedUrl", shortenerHandler.ResolveShortenedLink)
		links.GET("/:id", shortenerHandler.GetShortenedLinkByID)
		links.DELETE("/:id", shortenerHandler.DeleteShortenedLink)
	}

	// browser client
	router.GET("/", web.Index)
	router.GET("/r/:shortenedUrl", web.Index)
	router.GET("/assets/*filepath", web.Assets())

	return router
}
