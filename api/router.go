package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propradar/go-property-crawler/api/handler"
	"github.com/propradar/go-property-crawler/api/middleware"
	"github.com/propradar/go-property-crawler/internal/service"
)

func SetupRouter(propertyService *service.PropertyService) *gin.Engine {
	r := gin.Default()

	// 100 requests per hour for general endpoints, crawls are far scarcer
	generalLimiter := middleware.NewRateLimiter(100, time.Hour)
	crawlerLimiter := middleware.NewRateLimiter(5, time.Hour)

	propertyHandler := handler.NewPropertyHandler(propertyService)

	r.Use(middleware.CORSMiddleware())
	r.Use(generalLimiter.Middleware())

	r.GET("/properties", propertyHandler.GetProperties)
	r.GET("/properties/search", propertyHandler.SearchProperties)
	r.GET("/auctions", propertyHandler.GetAuctions)

	crawlerGroup := r.Group("/crawler")
	crawlerGroup.Use(crawlerLimiter.Middleware())
	{
		crawlerGroup.POST("/trigger", propertyHandler.TriggerCrawler)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "property-crawler-api",
			"version": "1.0.0",
		})
	})

	return r
}
