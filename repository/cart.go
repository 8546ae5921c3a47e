package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/tienda-api/models"
)

// CartRepository owns the cart lifecycle: one active cart per identity,
// line mutations with a server-side total recompute, checkout, history.
// Every multi-statement mutation runs inside a single transaction so a
// concurrent request can never observe a stale total.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// CartProduct is a cart line joined to its product row, annotated with the
// line subtotal.
type CartProduct struct {
	LineID      uint      `json:"carrito_producto_id" gorm:"column:carrito_producto_id"`
	Quantity    int       `json:"cantidad" gorm:"column:cantidad"`
	AddedAt     time.Time `json:"fecha_agregado" gorm:"column:fecha_agregado"`
	ProductID   uint      `json:"producto_id" gorm:"column:producto_id"`
	Name        string    `json:"nombre" gorm:"column:nombre"`
	Price       float64   `json:"precio" gorm:"column:precio"`
	Description string    `json:"descripcion" gorm:"column:descripcion"`
	Category    string    `json:"categoria" gorm:"column:categoria"`
	Stock       int       `json:"stock" gorm:"column:stock"`
	Subtotal    float64   `json:"subtotal" gorm:"column:subtotal"`
}

type CartRollup struct {
	LineCount     int     `json:"total_productos"`
	TotalQuantity int     `json:"cantidad_total"`
	Total         float64 `json:"total"`
}

type CartSummary struct {
	Cart     models.Cart   `json:"carrito"`
	Products []CartProduct `json:"productos"`
	Rollup   CartRollup    `json:"resumen"`
}

type Purchase struct {
	Cart     models.Cart   `json:"carrito"`
	Products []CartProduct `json:"productos"`
	Total    float64       `json:"total"`
}

type PurchaseDetails struct {
	Cart     models.Cart   `json:"carrito"`
	Products []CartProduct `json:"productos"`
}

type HistoryEntry struct {
	ID           uint           `json:"id" gorm:"column:id"`
	UserID       *int           `json:"usuario_id" gorm:"column:usuario_id"`
	CreatedAt    time.Time      `json:"fecha_creacion" gorm:"column:fecha_creacion"`
	FinalizedAt  *time.Time     `json:"fecha_finalizacion" gorm:"column:fecha_finalizacion"`
	Total        float64        `json:"total" gorm:"column:total"`
	PurchaseData datatypes.JSON `json:"datos_compra" gorm:"column:datos_compra"`
	Reference    string         `json:"referencia" gorm:"column:referencia"`
	LineCount    int64          `json:"total_productos" gorm:"column:total_productos"`
}

// GetOrCreateActiveCart returns the newest active cart for the identity,
// creating one with total 0 when none exists. A nil userID matches carts
// with no owner.
func (r *CartRepository) GetOrCreateActiveCart(userID *int) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("estado = ?", models.CartStatusActive)
		if userID != nil {
			query = query.Where("usuario_id = ?", *userID)
		} else {
			query = query.Where("usuario_id IS NULL")
		}

		err := query.Order("fecha_creacion DESC").First(&cart).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		cart = models.Cart{UserID: userID, Status: models.CartStatusActive, Total: 0}
		return tx.Create(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddProduct adds a product with additive semantics: a repeat add increases
// the existing line's quantity instead of creating a second line.
func (r *CartRepository) AddProduct(cartID, productID uint, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.activeCart(tx, cartID); err != nil {
			return err
		}

		var item models.CartItem
		err := tx.Where("carrito_id = ? AND producto_id = ?", cartID, productID).First(&item).Error
		if err == nil {
			return r.setQuantity(tx, cartID, productID, item.Quantity+quantity)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		item = models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return r.recomputeTotal(tx, cartID)
	})
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
func (r *CartRepository) SetQuantity(cartID, productID uint, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.activeCart(tx, cartID); err != nil {
			return err
		}
		return r.setQuantity(tx, cartID, productID, quantity)
	})
}

// RemoveProduct deletes a line if present. An absent line is not an error;
// the total is recomputed either way.
func (r *CartRepository) RemoveProduct(cartID, productID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.activeCart(tx, cartID); err != nil {
			return err
		}
		return r.removeProduct(tx, cartID, productID)
	})
}

// Clear deletes every line of the cart and resets the total to 0.
func (r *CartRepository) Clear(cartID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.activeCart(tx, cartID); err != nil {
			return err
		}
		if err := tx.Where("carrito_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return r.recomputeTotal(tx, cartID)
	})
}

// RecomputeTotal re-derives and persists the cart total, returning the new
// value. Idempotent.
func (r *CartRepository) RecomputeTotal(cartID uint) (float64, error) {
	var total float64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.recomputeTotal(tx, cartID); err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cartID).Select("total").Scan(&total).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Finalize freezes the cart: re-derives the total from current line
// subtotals, consumes product stock, stamps the finalization time and stores
// the opaque purchase payload. The whole checkout is one transaction.
func (r *CartRepository) Finalize(cartID uint, purchaseData datatypes.JSON) (*Purchase, error) {
	var purchase Purchase
	err := r.db.Transaction(func(tx *gorm.DB) error {
		cart, err := r.activeCart(tx, cartID)
		if err != nil {
			return err
		}

		products, err := r.cartProducts(tx, cartID, true)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, line := range products {
			total += line.Subtotal
		}

		// Consume inventory. The conditional update keeps the decrement
		// atomic against concurrent checkouts of the same product.
		for _, line := range products {
			result := tx.Model(&models.Product{}).
				Where("id = ? AND activo = ? AND stock >= ?", line.ProductID, true, line.Quantity).
				Updates(map[string]interface{}{
					"stock":              gorm.Expr("stock - ?", line.Quantity),
					"fecha_modificacion": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, line.Name)
			}
		}

		if len(purchaseData) == 0 {
			purchaseData = datatypes.JSON([]byte("{}"))
		}

		now := time.Now()
		cart.Status = models.CartStatusFinalized
		cart.FinalizedAt = &now
		cart.ModifiedAt = &now
		cart.Total = total
		cart.PurchaseData = purchaseData
		cart.Reference = generatePurchaseRef()
		if err := tx.Save(cart).Error; err != nil {
			return err
		}

		purchase = Purchase{Cart: *cart, Products: products, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// GetSummary returns the cart in any state with its live lines and rollup.
func (r *CartRepository) GetSummary(cartID uint) (*CartSummary, error) {
	var cart models.Cart
	if err := r.db.First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	products, err := r.cartProducts(r.db, cartID, true)
	if err != nil {
		return nil, err
	}

	rollup := CartRollup{LineCount: len(products)}
	for _, line := range products {
		rollup.TotalQuantity += line.Quantity
		rollup.Total += line.Subtotal
	}

	return &CartSummary{Cart: cart, Products: products, Rollup: rollup}, nil
}

// History returns one page of finalized carts, newest checkout first, each
// annotated with its recorded line count.
func (r *CartRepository) History(userID *int, limit, offset int) ([]HistoryEntry, error) {
	query := r.db.Table("carritos c").
		Select(`c.id, c.usuario_id, c.fecha_creacion, c.fecha_finalizacion, c.total,
			c.datos_compra, c.referencia, COUNT(cp.id) AS total_productos`).
		Joins("LEFT JOIN carrito_productos cp ON cp.carrito_id = c.id").
		Where("c.estado = ?", models.CartStatusFinalized)

	if userID != nil {
		query = query.Where("c.usuario_id = ?", *userID)
	}

	entries := []HistoryEntry{}
	err := query.
		Group("c.id, c.usuario_id, c.fecha_creacion, c.fecha_finalizacion, c.total, c.datos_compra, c.referencia").
		Order("c.fecha_finalizacion DESC").
		Limit(limit).Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetPurchaseDetails returns the full snapshot of one finalized cart. Lines
// are kept even when their product was soft-deleted after checkout.
func (r *CartRepository) GetPurchaseDetails(cartID uint) (*PurchaseDetails, error) {
	var cart models.Cart
	err := r.db.Where("id = ? AND estado = ?", cartID, models.CartStatusFinalized).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	products, err := r.cartProducts(r.db, cartID, false)
	if err != nil {
		return nil, err
	}
	return &PurchaseDetails{Cart: cart, Products: products}, nil
}

// AbandonStale flips active carts untouched for longer than the threshold to
// "abandonado" and reports how many it changed.
func (r *CartRepository) AbandonStale(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := r.db.Model(&models.Cart{}).
		Where("estado = ?", models.CartStatusActive).
		Where("COALESCE(fecha_modificacion, fecha_creacion) < ?", cutoff).
		Updates(map[string]interface{}{
			"estado":             models.CartStatusAbandoned,
			"fecha_modificacion": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// activeCart loads the cart and rejects mutations on anything but an active
// one. Finalized carts are frozen; checkout on them must never silently pass.
func (r *CartRepository) activeCart(tx *gorm.DB, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cart.Status != models.CartStatusActive {
		return nil, ErrCartNotActive
	}
	return &cart, nil
}

func (r *CartRepository) setQuantity(tx *gorm.DB, cartID, productID uint, quantity int) error {
	if quantity <= 0 {
		return r.removeProduct(tx, cartID, productID)
	}

	err := tx.Model(&models.CartItem{}).
		Where("carrito_id = ? AND producto_id = ?", cartID, productID).
		Update("cantidad", quantity).Error
	if err != nil {
		return err
	}
	return r.recomputeTotal(tx, cartID)
}

func (r *CartRepository) removeProduct(tx *gorm.DB, cartID, productID uint) error {
	err := tx.Where("carrito_id = ? AND producto_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return err
	}
	return r.recomputeTotal(tx, cartID)
}

// recomputeTotal is the single source of truth for a cart's total: the sum
// of quantity times current price over lines whose product is still active.
func (r *CartRepository) recomputeTotal(tx *gorm.DB, cartID uint) error {
	var total float64
	err := tx.Table("carrito_productos cp").
		Select("COALESCE(SUM(cp.cantidad * p.precio), 0)").
		Joins("INNER JOIN productos p ON cp.producto_id = p.id").
		Where("cp.carrito_id = ? AND p.activo = ?", cartID, true).
		Scan(&total).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Cart{}).Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"total":              total,
			"fecha_modificacion": time.Now(),
		}).Error
}

// cartProducts loads the annotated lines of a cart. activeOnly drops lines
// whose product was soft-deleted; history views keep them.
func (r *CartRepository) cartProducts(tx *gorm.DB, cartID uint, activeOnly bool) ([]CartProduct, error) {
	query := tx.Table("carrito_productos cp").
		Select(`cp.id AS carrito_producto_id, cp.cantidad, cp.fecha_agregado,
			p.id AS producto_id, p.nombre, p.precio, p.descripcion, p.categoria, p.stock,
			(cp.cantidad * p.precio) AS subtotal`).
		Joins("INNER JOIN productos p ON cp.producto_id = p.id").
		Where("cp.carrito_id = ?", cartID)

	if activeOnly {
		query = query.Where("p.activo = ?", true)
	}

	products := []CartProduct{}
	if err := query.Order("cp.fecha_agregado DESC").Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Purchase references look like 20250901130500-<uuid>.
func generatePurchaseRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
