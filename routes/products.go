package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/junaidrashid-git/tienda-api/controllers/product"
	"github.com/junaidrashid-git/tienda-api/middleware"
	"github.com/junaidrashid-git/tienda-api/repository"
)

// SetupProductRoutes registers the catalog endpoints. Writes sit behind the
// optional admin API key.
func SetupProductRoutes(api *gin.RouterGroup, repo *repository.ProductRepository) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(repo))
		products.GET("/search", productcontroller.SearchProducts(repo))
		products.GET("/export", productcontroller.ExportProductsToExcel(repo))
		products.GET("/:id", productcontroller.GetProductByID(repo))
		products.GET("/:id/stock", productcontroller.CheckStock(repo))

		products.POST("", middleware.ValidateAPIKey, productcontroller.CreateProduct(repo))
		products.PUT("/:id", middleware.ValidateAPIKey, productcontroller.UpdateProduct(repo))
		products.DELETE("/:id", middleware.ValidateAPIKey, productcontroller.DeleteProduct(repo))
	}
}
