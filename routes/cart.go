package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/junaidrashid-git/tienda-api/controllers/cart"
	"github.com/junaidrashid-git/tienda-api/repository"
)

// SetupCartRoutes registers the cart and purchase-history endpoints.
func SetupCartRoutes(api *gin.RouterGroup, products *repository.ProductRepository, carts *repository.CartRepository) {
	cart := api.Group("/cart")
	{
		cart.GET("/active", cartControllers.GetActiveCart(carts))
		cart.POST("/add-product", cartControllers.AddProduct(products, carts))
		cart.PUT("/:carritoId/products/:productoId", cartControllers.UpdateQuantity(products, carts))
		cart.DELETE("/:carritoId/products/:productoId", cartControllers.RemoveProduct(carts))
		cart.DELETE("/:carritoId/clear", cartControllers.ClearCart(carts))
		cart.POST("/:carritoId/checkout", cartControllers.FinalizePurchase(carts))

		cart.GET("/history", cartControllers.GetPurchaseHistory(carts))
		cart.GET("/purchase/:carritoId", cartControllers.GetPurchaseDetails(carts))
	}
}
