package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/junaidrashid-git/tienda-api/models"
)

// ProductRepository owns all catalog queries. It never validates business
// input; that happens in the handlers.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilters are conjunctive; zero values mean "not set".
type ProductFilters struct {
	Name     string
	Category string
	PriceMin *float64
	PriceMax *float64
}

// ProductUpdate carries a partial update; nil fields keep the stored value.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Stock       *int
	Description *string
	Category    *string
}

// StockInfo mirrors the stock-check response. A missing product is reported
// as Available=false, not as an error.
type StockInfo struct {
	Available    bool   `json:"available"`
	CurrentStock int    `json:"currentStock"`
	Message      string `json:"message"`
}

func (r *ProductRepository) Create(p *models.Product) error {
	p.Active = true
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("activo = ?", true).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List returns one page of active products plus the unpaged match count.
// Limit and offset are pushed into the query.
func (r *ProductRepository) List(f ProductFilters, limit, offset int) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Where("activo = ?", true)

	if f.Name != "" {
		query = query.Where("LOWER(nombre) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Category != "" {
		query = query.Where("categoria = ?", f.Category)
	}
	if f.PriceMin != nil {
		query = query.Where("precio >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		query = query.Where("precio <= ?", *f.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Order("fecha_creacion DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Search matches the term as a case-insensitive substring of the name.
func (r *ProductRepository) Search(term string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("activo = ?", true).
		Where("LOWER(nombre) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("nombre").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Update merges the supplied fields over the stored row and refreshes the
// modification timestamp.
func (r *ProductRepository) Update(id uint, u ProductUpdate) (*models.Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if u.Name != nil {
		product.Name = strings.TrimSpace(*u.Name)
	}
	if u.Price != nil {
		product.Price = *u.Price
	}
	if u.Stock != nil {
		product.Stock = *u.Stock
	}
	if u.Description != nil {
		product.Description = strings.TrimSpace(*u.Description)
	}
	if u.Category != nil {
		product.Category = strings.TrimSpace(*u.Category)
	}

	now := time.Now()
	product.ModifiedAt = &now

	if err := r.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDelete clears the active flag. The row is never physically removed so
// finalized carts keep their history.
func (r *ProductRepository) SoftDelete(id uint) (uint, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND activo = ?", id, true).
		Updates(map[string]interface{}{
			"activo":             false,
			"fecha_modificacion": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return id, nil
}

// CheckStock reports whether the requested quantity is available. A missing
// or soft-deleted product yields Available=false with a message.
func (r *ProductRepository) CheckStock(id uint, quantity int) (*StockInfo, error) {
	product, err := r.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &StockInfo{Available: false, Message: "Producto no encontrado"}, nil
		}
		return nil, err
	}

	info := &StockInfo{
		Available:    product.Stock >= quantity,
		CurrentStock: product.Stock,
	}
	if info.Available {
		info.Message = "Stock disponible"
	} else {
		info.Message = "Stock insuficiente"
	}
	return info, nil
}

// UpdateStock overwrites the stock level of an active product.
func (r *ProductRepository) UpdateStock(id uint, newStock int) (*models.Product, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND activo = ?", id, true).
		Updates(map[string]interface{}{
			"stock":              newStock,
			"fecha_modificacion": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// ExportAll returns every active product, oldest first, for the Excel export.
func (r *ProductRepository) ExportAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("activo = ?", true).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
