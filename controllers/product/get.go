package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// GetProductByID returns a single active product.
// GET /products/:id
func GetProductByID(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		product, err := repo.GetByID(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
				return
			}
			utils.Internal(c, "Error obteniendo producto", err)
			return
		}

		utils.Success(c, http.StatusOK, "Producto obtenido exitosamente", product)
	}
}

// parseID reads the numeric :id parameter, answering 400 itself on garbage.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.Fail(c, http.StatusBadRequest, "ID de producto inválido")
		return 0, false
	}
	return uint(id), true
}
