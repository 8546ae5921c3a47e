package cartControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// FinalizePurchase checks out the cart. The request body is stored verbatim
// as the purchase payload; its structure is never interpreted.
// POST /cart/:carritoId/checkout
func FinalizePurchase(carts *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := parseID(c, "carritoId", "ID de carrito inválido")
		if !ok {
			return
		}

		body, err := c.GetRawData()
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if len(body) > 0 && !json.Valid(body) {
			utils.Fail(c, http.StatusBadRequest, "Los datos de compra deben ser JSON válido")
			return
		}

		purchase, err := carts.Finalize(cartID, datatypes.JSON(body))
		if err != nil {
			respondCartError(c, "Error finalizando compra", err)
			return
		}

		utils.Success(c, http.StatusOK, "Compra finalizada exitosamente", purchase)
	}
}
