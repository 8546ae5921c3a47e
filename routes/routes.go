package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// SetupRoutes is the single entry-point that wires every route group under
// the versioned API prefix.
func SetupRoutes(r *gin.Engine, db *gorm.DB, prefix string) {
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)

	api := r.Group(prefix)

	// API index
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.Response{
			Success: true,
			Message: "API REST para gestión de productos y carrito de compras",
			Data: gin.H{
				"version": "1.0.0",
				"endpoints": gin.H{
					"products": prefix + "/products",
					"cart":     prefix + "/cart",
					"health":   prefix + "/health",
				},
			},
		})
	})

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.Response{
			Success: true,
			Message: "API funcionando correctamente",
			Data: gin.H{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"version":   "1.0.0",
			},
		})
	})

	SetupProductRoutes(api, productRepo)
	SetupCartRoutes(api, productRepo, cartRepo)
}
