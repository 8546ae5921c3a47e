package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/utils"
)

// ValidateAPIKey guards catalog writes when ADMIN_API_KEY is configured.
// Without the variable the check is disabled and the API stays open.
func ValidateAPIKey(c *gin.Context) {
	required := os.Getenv("ADMIN_API_KEY")
	if required == "" {
		c.Next()
		return
	}

	if c.GetHeader("X-API-KEY") != required {
		c.JSON(http.StatusUnauthorized, utils.Response{
			Success: false,
			Message: "Clave de API inválida o faltante",
		})
		c.Abort()
		return
	}
	c.Next()
}
