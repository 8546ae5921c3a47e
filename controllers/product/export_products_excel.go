package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

// ExportProductsToExcel streams the active catalog as an .xlsx attachment.
// GET /products/export
func ExportProductsToExcel(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ExportAll()
		if err != nil {
			utils.Internal(c, "Error exportando productos", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Productos")
		if err != nil {
			utils.Internal(c, "Error creando hoja de Excel", err)
			return
		}

		headers := []string{"ID", "Nombre", "Precio", "Stock", "Descripcion", "Categoria", "FechaCreacion"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=productos.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, utils.Response{
				Success: false,
				Message: "Error escribiendo el archivo Excel",
			})
			return
		}
	}
}
