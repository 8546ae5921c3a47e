package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/models"
	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

type CreateProductInput struct {
	Name        string   `json:"nombre"`
	Price       *float64 `json:"precio"`
	Stock       *int     `json:"stock"`
	Description string   `json:"descripcion"`
	Category    string   `json:"categoria"`
}

// CreateProduct registers a new catalog entry.
func CreateProduct(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}

		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" || input.Price == nil || input.Stock == nil {
			utils.Fail(c, http.StatusBadRequest, "Los campos nombre, precio y stock son obligatorios")
			return
		}
		if *input.Price <= 0 {
			utils.Fail(c, http.StatusBadRequest, "El precio debe ser mayor a 0")
			return
		}
		if *input.Stock < 0 {
			utils.Fail(c, http.StatusBadRequest, "El stock no puede ser negativo")
			return
		}

		category := strings.TrimSpace(input.Category)
		if category == "" {
			category = "General"
		}

		product := models.Product{
			Name:        input.Name,
			Price:       *input.Price,
			Stock:       *input.Stock,
			Description: strings.TrimSpace(input.Description),
			Category:    category,
		}
		if err := repo.Create(&product); err != nil {
			utils.Internal(c, "Error creando producto", err)
			return
		}

		utils.Success(c, http.StatusCreated, "Producto creado exitosamente", product)
	}
}
