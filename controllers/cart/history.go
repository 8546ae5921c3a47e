package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// GetPurchaseHistory pages through finalized carts, newest checkout first.
// GET /cart/history?userId=&page=&limit=
func GetPurchaseHistory(carts *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseUserID(c, c.Query("userId"))
		if !ok {
			return
		}

		page := parsePage(c.DefaultQuery("page", "1"), 1)
		limit := parsePage(c.DefaultQuery("limit", "10"), 10)

		history, err := carts.History(userID, limit, (page-1)*limit)
		if err != nil {
			utils.Internal(c, "Error obteniendo historial", err)
			return
		}

		utils.SuccessPaginated(c, "Historial obtenido exitosamente", history,
			&utils.Pagination{CurrentPage: page, ItemsPerPage: limit})
	}
}

// GetPurchaseDetails returns the frozen snapshot of one finalized cart.
// GET /cart/purchase/:carritoId
func GetPurchaseDetails(carts *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := parseID(c, "carritoId", "ID de carrito inválido")
		if !ok {
			return
		}

		details, err := carts.GetPurchaseDetails(cartID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.Fail(c, http.StatusNotFound, "Compra no encontrada")
				return
			}
			utils.Internal(c, "Error obteniendo detalles de compra", err)
			return
		}

		utils.Success(c, http.StatusOK, "Detalles de compra obtenidos exitosamente", details)
	}
}

func parsePage(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
