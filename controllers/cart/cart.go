package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/tienda-api/repository"
	"github.com/junaidrashid-git/tienda-api/utils"
)

type AddProductInput struct {
	ProductID *uint `json:"productoId"`
	Quantity  *int  `json:"cantidad"`
	UserID    *int  `json:"userId"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"cantidad"`
}

// GetActiveCart returns (creating lazily if needed) the current cart for the
// identity in ?userId=; without it, the shared anonymous cart.
// GET /cart/active
func GetActiveCart(repo *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseUserID(c, c.Query("userId"))
		if !ok {
			return
		}

		cart, err := repo.GetOrCreateActiveCart(userID)
		if err != nil {
			utils.Internal(c, "Error obteniendo carrito", err)
			return
		}

		summary, err := repo.GetSummary(cart.ID)
		if err != nil {
			utils.Internal(c, "Error obteniendo resumen del carrito", err)
			return
		}

		utils.Success(c, http.StatusOK, "Carrito obtenido exitosamente", summary)
	}
}

// AddProduct validates against the catalog (exists + stock) and then adds to
// the active cart. This is the only handler that reads one repository and
// writes another.
// POST /cart/add-product
func AddProduct(products *repository.ProductRepository, carts *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}

		if input.ProductID == nil || *input.ProductID == 0 {
			utils.Fail(c, http.StatusBadRequest, "El ID del producto es obligatorio")
			return
		}

		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		if quantity <= 0 {
			utils.Fail(c, http.StatusBadRequest, "La cantidad debe ser mayor a 0")
			return
		}

		if _, err := products.GetByID(*input.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
				return
			}
			utils.Internal(c, "Error validando producto", err)
			return
		}

		stock, err := products.CheckStock(*input.ProductID, quantity)
		if err != nil {
			utils.Internal(c, "Error verificando stock", err)
			return
		}
		if !stock.Available {
			utils.Fail(c, http.StatusBadRequest,
				"Stock insuficiente. Stock disponible: "+strconv.Itoa(stock.CurrentStock))
			return
		}

		cart, err := carts.GetOrCreateActiveCart(input.UserID)
		if err != nil {
			utils.Internal(c, "Error obteniendo carrito", err)
			return
		}

		if err := carts.AddProduct(cart.ID, *input.ProductID, quantity); err != nil {
			respondCartError(c, "Error añadiendo producto al carrito", err)
			return
		}

		respondSummary(c, carts, cart.ID, "Producto añadido al carrito exitosamente")
	}
}

// UpdateQuantity overwrites a line's quantity; 0 removes the line.
// PUT /cart/:carritoId/products/:productoId
func UpdateQuantity(products *repository.ProductRepository, carts *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := parseID(c, "carritoId", "ID de carrito inválido")
		if !ok {
			return
		}
		productID, ok := parseID(c, "productoId", "ID de producto inválido")
		if !ok {
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if input.Quantity == nil {
			utils.Fail(c, http.StatusBadRequest, "La cantidad es obligatoria")
			return
		}
		if *input.Quantity < 0 {
			utils.Fail(c, http.StatusBadRequest, "La cantidad no puede ser negativa")
			return
		}

		if *input.Quantity == 0 {
			if err := carts.RemoveProduct(cartID, productID); err != nil {
				respondCartError(c, "Error eliminando producto del carrito", err)
				return
			}
			respondSummary(c, carts, cartID, "Producto eliminado del carrito")
			return
		}

		stock, err := products.CheckStock(productID, *input.Quantity)
		if err != nil {
			utils.Internal(c, "Error verificando stock", err)
			return
		}
		if !stock.Available {
			utils.Fail(c, http.StatusBadRequest,
				"Stock insuficiente. Stock disponible: "+strconv.Itoa(stock.CurrentStock))
			return
		}

		if err := carts.SetQuantity(cartID, productID, *input.Quantity); err != nil {
			respondCartError(c, "Error actualizando cantidad", err)
			return
		}

		respondSummary(c, carts, cartID, "Cantidad actualizada exitosamente")
	}
}

// RemoveProduct deletes a line. Removing an absent line still succeeds.
// DELETE /cart/:carritoId/products/:productoId
func RemoveProduct(carts *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := parseID(c, "carritoId", "ID de carrito inválido")
		if !ok {
			return
		}
		productID, ok := parseID(c, "productoId", "ID de producto inválido")
		if !ok {
			return
		}

		if err := carts.RemoveProduct(cartID, productID); err != nil {
			respondCartError(c, "Error eliminando producto del carrito", err)
			return
		}

		respondSummary(c, carts, cartID, "Producto eliminado del carrito exitosamente")
	}
}

// ClearCart empties the cart and resets its total.
// DELETE /cart/:carritoId/clear
func ClearCart(carts *repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := parseID(c, "carritoId", "ID de carrito inválido")
		if !ok {
			return
		}

		if err := carts.Clear(cartID); err != nil {
			respondCartError(c, "Error vaciando carrito", err)
			return
		}

		respondSummary(c, carts, cartID, "Carrito vaciado exitosamente")
	}
}

func respondSummary(c *gin.Context, carts *repository.CartRepository, cartID uint, message string) {
	summary, err := carts.GetSummary(cartID)
	if err != nil {
		utils.Internal(c, "Error obteniendo resumen del carrito", err)
		return
	}
	utils.Success(c, http.StatusOK, message, summary)
}

// respondCartError maps repository sentinels to the API's status codes.
func respondCartError(c *gin.Context, logMessage string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.Fail(c, http.StatusNotFound, "Carrito no encontrado")
	case errors.Is(err, repository.ErrCartNotActive):
		utils.Fail(c, http.StatusBadRequest, "El carrito no está activo")
	case errors.Is(err, repository.ErrEmptyCart):
		utils.Fail(c, http.StatusBadRequest, "El carrito está vacío")
	case errors.Is(err, repository.ErrInsufficientStock):
		utils.Fail(c, http.StatusBadRequest, "Stock insuficiente para completar la compra")
	default:
		utils.Internal(c, logMessage, err)
	}
}

func parseID(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.Fail(c, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}

// parseUserID turns an optional query value into *int; empty means anonymous.
func parseUserID(c *gin.Context, raw string) (*int, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		utils.Fail(c, http.StatusBadRequest, "userId inválido")
		return nil, false
	}
	return &id, true
}
