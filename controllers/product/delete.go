package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// DeleteProduct soft-deletes: the row stays for cart history, the catalog
// stops listing it.
// DELETE /products/:id
func DeleteProduct(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		deletedID, err := repo.SoftDelete(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
				return
			}
			utils.Internal(c, "Error eliminando producto", err)
			return
		}

		utils.Success(c, http.StatusOK, "Producto eliminado exitosamente", gin.H{"id": deletedID})
	}
}
