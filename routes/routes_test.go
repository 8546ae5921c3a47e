package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/junaidrashid-git/tienda-api/models"
	"github.com/junaidrashid-git/tienda-api/utils"
)

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Error      string            `json:"error"`
	Pagination *utils.Pagination `json:"pagination"`
}

type productPayload struct {
	ID       uint    `json:"id"`
	Name     string  `json:"nombre"`
	Price    float64 `json:"precio"`
	Stock    int     `json:"stock"`
	Category string  `json:"categoria"`
	Active   bool    `json:"activo"`
}

type summaryPayload struct {
	Cart struct {
		ID     uint    `json:"id"`
		Status string  `json:"estado"`
		Total  float64 `json:"total"`
	} `json:"carrito"`
	Products []struct {
		ProductID uint    `json:"producto_id"`
		Quantity  int     `json:"cantidad"`
		Subtotal  float64 `json:"subtotal"`
	} `json:"productos"`
	Rollup struct {
		LineCount     int     `json:"total_productos"`
		TotalQuantity int     `json:"cantidad_total"`
		Total         float64 `json:"total"`
	} `json:"resumen"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}))

	r := gin.New()
	SetupRoutes(r, db, "/api/v1")
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.Contains(w.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func createWidget(t *testing.T, r *gin.Engine, name string, price float64, stock int) productPayload {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"nombre": name,
		"precio": price,
		"stock":  stock,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	var p productPayload
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "API funcionando correctamente", env.Message)
}

func TestCreateProduct(t *testing.T) {
	r := newTestRouter(t)

	p := createWidget(t, r, "Widget", 9.99, 5)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "General", p.Category)
	assert.True(t, p.Active)
}

func TestCreateProduct_Validation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing fields", gin.H{"nombre": "Widget"}},
		{"zero price", gin.H{"nombre": "Widget", "precio": 0, "stock": 5}},
		{"negative price", gin.H{"nombre": "Widget", "precio": -1, "stock": 5}},
		{"negative stock", gin.H{"nombre": "Widget", "precio": 9.99, "stock": -1}},
		{"blank name", gin.H{"nombre": "  ", "precio": 9.99, "stock": 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/v1/products", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Producto no encontrado", env.Message)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProducts_PaginationEnvelope(t *testing.T) {
	r := newTestRouter(t)

	for i := 1; i <= 5; i++ {
		createWidget(t, r, fmt.Sprintf("Producto %d", i), 10.00, 1)
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/products?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.CurrentPage)
	assert.EqualValues(t, 5, env.Pagination.TotalItems)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.Equal(t, 2, env.Pagination.ItemsPerPage)

	var page []productPayload
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 2)
}

func TestSearchProducts_TermTooShort(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/products/search?q=a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	createWidget(t, r, "Widget", 9.99, 5)
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/products/search?q=wid", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Se encontraron 1 productos", env.Message)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 5)

	w, env := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", p.ID), gin.H{"precio": 12.50})
	require.Equal(t, http.StatusOK, w.Code)
	var updated productPayload
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, "Widget", updated.Name)

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockCheckEndpoint(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 5)

	w, env := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/products/%d/stock?cantidad=10", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info struct {
		Available    bool `json:"available"`
		CurrentStock int  `json:"currentStock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.False(t, info.Available)
	assert.Equal(t, 5, info.CurrentStock)

	// A missing product is still a 200 with available=false.
	w, env = doJSON(t, r, http.MethodGet, "/api/v1/products/999/stock?cantidad=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.False(t, info.Available)
}

func TestAdminAPIKeyGuardsWrites(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "secreto")
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"nombre": "Widget", "precio": 9.99, "stock": 5,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products",
		bytes.NewReader([]byte(`{"nombre":"Widget","precio":9.99,"stock":5}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", "secreto")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Reads stay open.
	rec2, _ := doJSON(t, r, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func addToCart(t *testing.T, r *gin.Engine, productID uint, quantity int) summaryPayload {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/cart/add-product", gin.H{
		"productoId": productID,
		"cantidad":   quantity,
	})
	require.Equal(t, http.StatusOK, w.Code, "add-product: %s", env.Message)

	var summary summaryPayload
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	return summary
}

func TestCartWidgetScenario(t *testing.T) {
	// Create Widget (9.99, stock 5), add 3 to the cart, then set the line
	// to 0 and watch the summary collapse.
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 5)

	summary := addToCart(t, r, p.ID, 3)
	assert.Equal(t, 1, summary.Rollup.LineCount)
	assert.Equal(t, 3, summary.Rollup.TotalQuantity)
	assert.InDelta(t, 29.97, summary.Rollup.Total, 0.001)

	path := fmt.Sprintf("/api/v1/cart/%d/products/%d", summary.Cart.ID, p.ID)
	w, env := doJSON(t, r, http.MethodPut, path, gin.H{"cantidad": 0})
	require.Equal(t, http.StatusOK, w.Code)

	var after summaryPayload
	require.NoError(t, json.Unmarshal(env.Data, &after))
	assert.Zero(t, after.Rollup.LineCount)
	assert.Zero(t, after.Rollup.Total)
}

func TestAddProduct_Validation(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 5)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/cart/add-product", gin.H{"cantidad": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/cart/add-product", gin.H{"productoId": p.ID, "cantidad": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/cart/add-product", gin.H{"productoId": 999, "cantidad": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Producto no encontrado", env.Message)

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/cart/add-product", gin.H{"productoId": p.ID, "cantidad": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "Stock insuficiente")
	assert.Contains(t, env.Message, "5")
}

func TestRepeatAddIsAdditiveOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 50)

	addToCart(t, r, p.ID, 2)
	summary := addToCart(t, r, p.ID, 3)

	require.Equal(t, 1, summary.Rollup.LineCount)
	assert.Equal(t, 5, summary.Rollup.TotalQuantity)
}

func TestGetActiveCart(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/cart/active?userId=7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary summaryPayload
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "activo", summary.Cart.Status)
	assert.Zero(t, summary.Rollup.LineCount)

	// Same identity, same cart.
	w, env = doJSON(t, r, http.MethodGet, "/api/v1/cart/active?userId=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var again summaryPayload
	require.NoError(t, json.Unmarshal(env.Data, &again))
	assert.Equal(t, summary.Cart.ID, again.Cart.ID)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/cart/active?userId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearCartEndpoint(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 50)

	summary := addToCart(t, r, p.ID, 2)

	w, env := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d/clear", summary.Cart.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var after summaryPayload
	require.NoError(t, json.Unmarshal(env.Data, &after))
	assert.Zero(t, after.Rollup.LineCount)
	assert.Zero(t, after.Cart.Total)
}

func TestCheckoutFlow(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 5)
	summary := addToCart(t, r, p.ID, 3)

	w, env := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/cart/%d/checkout", summary.Cart.ID),
		gin.H{"metodo_pago": "tarjeta"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Compra finalizada exitosamente", env.Message)

	var purchase struct {
		Cart struct {
			Status       string          `json:"estado"`
			Reference    string          `json:"referencia"`
			PurchaseData json.RawMessage `json:"datos_compra"`
		} `json:"carrito"`
		Products []json.RawMessage `json:"productos"`
		Total    float64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &purchase))
	assert.Equal(t, "finalizado", purchase.Cart.Status)
	assert.NotEmpty(t, purchase.Cart.Reference)
	assert.JSONEq(t, `{"metodo_pago":"tarjeta"}`, string(purchase.Cart.PurchaseData))
	assert.Len(t, purchase.Products, 1)
	assert.InDelta(t, 29.97, purchase.Total, 0.001)

	// Inventory consumed.
	w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var after productPayload
	require.NoError(t, json.Unmarshal(env.Data, &after))
	assert.Equal(t, 2, after.Stock)

	// The finalized cart rejects further mutation.
	w, env = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/v1/cart/%d/products/%d", summary.Cart.ID, p.ID), gin.H{"cantidad": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "El carrito no está activo", env.Message)
}

func TestCheckout_EmptyCart(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/cart/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary summaryPayload
	require.NoError(t, json.Unmarshal(env.Data, &summary))

	w, env = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/cart/%d/checkout", summary.Cart.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "El carrito está vacío", env.Message)
}

func TestCheckout_InvalidMetadata(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 5)
	summary := addToCart(t, r, p.ID, 1)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/cart/%d/checkout", summary.Cart.ID),
		bytes.NewReader([]byte("esto no es json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryAndPurchaseDetails(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 100)

	checkout := func(quantity int) uint {
		summary := addToCart(t, r, p.ID, quantity)
		w, _ := doJSON(t, r, http.MethodPost,
			fmt.Sprintf("/api/v1/cart/%d/checkout", summary.Cart.ID), gin.H{})
		require.Equal(t, http.StatusOK, w.Code)
		return summary.Cart.ID
	}

	first := checkout(1)
	checkout(2)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/cart/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.CurrentPage)

	var history []struct {
		ID        uint  `json:"id"`
		LineCount int64 `json:"total_productos"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history, 2)

	w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/cart/purchase/%d", first), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var details struct {
		Cart struct {
			Status string `json:"estado"`
		} `json:"carrito"`
		Products []json.RawMessage `json:"productos"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Equal(t, "finalizado", details.Cart.Status)
	assert.Len(t, details.Products, 1)
}

func TestPurchaseDetails_NotFoundForActiveCart(t *testing.T) {
	r := newTestRouter(t)
	p := createWidget(t, r, "Widget", 9.99, 5)
	summary := addToCart(t, r, p.ID, 1)

	w, env := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/cart/purchase/%d", summary.Cart.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Compra no encontrada", env.Message)
}
