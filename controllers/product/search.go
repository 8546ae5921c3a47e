package productcontroller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// SearchProducts matches the term against product names.
// GET /products/search?q=
func SearchProducts(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := strings.TrimSpace(c.Query("q"))
		if len(term) < 2 {
			utils.Fail(c, http.StatusBadRequest, "El término de búsqueda debe tener al menos 2 caracteres")
			return
		}

		products, err := repo.Search(term)
		if err != nil {
			utils.Internal(c, "Error buscando productos", err)
			return
		}

		message := fmt.Sprintf("Se encontraron %d productos", len(products))
		utils.Success(c, http.StatusOK, message, products)
	}
}
