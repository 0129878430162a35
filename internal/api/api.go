// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/craftledger/internal/api/handlers"
	"github.com/andresuchdata/craftledger/internal/api/middleware"
	"github.com/andresuchdata/craftledger/internal/service"
)

type Services struct {
	LedgerService *service.LedgerService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.LedgerService != nil {
		h := handlers.NewLedgerHandler(services.LedgerService)

		apiGroup.GET("/records", h.GetRecords)

		materials := apiGroup.Group("/materials")
		{
			materials.GET("", h.ListMaterials)
			materials.POST("", h.CreateMaterial)
			materials.PUT("/:id", h.UpdateMaterial)
			materials.DELETE("/:id", h.DeleteMaterial)
		}

		products := apiGroup.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.POST("", h.CreateProduct)
			products.PUT("/:id", h.UpdateProduct)
			products.DELETE("/:id", h.DeleteProduct)
		}

		orders := apiGroup.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			orders.POST("", h.CreateOrder)
			orders.GET("/:id", h.GetOrder)
			orders.PUT("/:id", h.UpdateOrder)
			orders.PATCH("/:id/status", h.UpdateOrderStatus)
			orders.DELETE("/:id", h.DeleteOrder)
		}

		ads := apiGroup.Group("/ads")
		{
			ads.GET("", h.ListAds)
			ads.POST("", h.CreateAd)
			ads.PUT("/:id", h.UpdateAd)
			ads.DELETE("/:id", h.DeleteAd)
		}

		dashboard := apiGroup.Group("/dashboard")
		{
			dashboard.GET("", h.GetDashboard)
			dashboard.GET("/metrics", h.GetMetrics)
			dashboard.GET("/insight", h.GetInsight)
			dashboard.GET("/products", h.GetProductEconomics)
		}

		apiGroup.GET("/export.xlsx", h.ExportXLSX)

		admin := apiGroup.Group("/admin")
		{
			admin.POST("/reset", h.ResetToDemo)
			admin.POST("/clear", h.ClearAll)
			admin.POST("/start-fresh", h.StartFresh)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
