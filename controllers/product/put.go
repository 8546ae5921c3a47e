package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

type UpdateProductInput struct {
	Name        *string  `json:"nombre"`
	Price       *float64 `json:"precio"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"descripcion"`
	Category    *string  `json:"categoria"`
}

// UpdateProduct merges the supplied fields over the stored product.
// PUT /products/:id
func UpdateProduct(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}

		if input.Price != nil && *input.Price <= 0 {
			utils.Fail(c, http.StatusBadRequest, "El precio debe ser mayor a 0")
			return
		}
		if input.Stock != nil && *input.Stock < 0 {
			utils.Fail(c, http.StatusBadRequest, "El stock no puede ser negativo")
			return
		}

		product, err := repo.Update(id, repository.ProductUpdate{
			Name:        input.Name,
			Price:       input.Price,
			Stock:       input.Stock,
			Description: input.Description,
			Category:    input.Category,
		})
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
				return
			}
			utils.Internal(c, "Error actualizando producto", err)
			return
		}

		utils.Success(c, http.StatusOK, "Producto actualizado exitosamente", product)
	}
}
