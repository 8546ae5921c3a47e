package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// GetProducts lists active products with optional conjunctive filters and
// store-side pagination.
// GET /products?nombre=&categoria=&precioMin=&precioMax=&page=&limit=
func GetProducts(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := repository.ProductFilters{
			Name:     c.Query("nombre"),
			Category: c.Query("categoria"),
		}

		if raw := c.Query("precioMin"); raw != "" {
			min, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				utils.Fail(c, http.StatusBadRequest, "precioMin inválido")
				return
			}
			filters.PriceMin = &min
		}
		if raw := c.Query("precioMax"); raw != "" {
			max, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				utils.Fail(c, http.StatusBadRequest, "precioMax inválido")
				return
			}
			filters.PriceMax = &max
		}

		page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
		limit := parsePositiveInt(c.DefaultQuery("limit", "10"), 10)

		products, total, err := repo.List(filters, limit, (page-1)*limit)
		if err != nil {
			utils.Internal(c, "Error obteniendo productos", err)
			return
		}

		utils.SuccessPaginated(c, "Productos obtenidos exitosamente", products,
			utils.NewPagination(page, limit, total))
	}
}

// parsePositiveInt falls back to def on garbage or non-positive input.
func parsePositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
