package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// CheckStock reports availability for a requested quantity. A missing
// product is answered 200 with available=false, not 404.
// GET /products/:id/stock?cantidad=
func CheckStock(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		quantity := 1
		if raw := c.Query("cantidad"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				utils.Fail(c, http.StatusBadRequest, "La cantidad debe ser mayor a 0")
				return
			}
			quantity = n
		}

		info, err := repo.CheckStock(id, quantity)
		if err != nil {
			utils.Internal(c, "Error verificando stock", err)
			return
		}

		utils.Success(c, http.StatusOK, info.Message, info)
	}
}
