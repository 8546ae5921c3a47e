package models

import (
	"time"

	"gorm.io/datatypes"
)

// Cart states. A cart is created "activo", becomes "finalizado" on checkout
// (terminal) or "abandonado" when the sweeper finds it stale.
const (
	CartStatusActive    = "activo"
	CartStatusFinalized = "finalizado"
	CartStatusAbandoned = "abandonado"
)

type Cart struct {
	ID           uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       *int           `json:"usuario_id" gorm:"column:usuario_id;index"`
	Items        []CartItem     `json:"-" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"` // Cascade delete items if cart is deleted
	Status       string         `json:"estado" gorm:"column:estado;type:varchar(50);default:'activo';index"`
	Total        float64        `json:"total" gorm:"column:total;type:decimal(10,2);default:0"`
	PurchaseData datatypes.JSON `json:"datos_compra,omitempty" gorm:"column:datos_compra"` // Opaque checkout payload, stored verbatim
	Reference    string         `json:"referencia,omitempty" gorm:"column:referencia;type:varchar(100)"`
	CreatedAt    time.Time      `json:"fecha_creacion" gorm:"column:fecha_creacion;autoCreateTime"`
	ModifiedAt   *time.Time     `json:"fecha_modificacion" gorm:"column:fecha_modificacion"`
	FinalizedAt  *time.Time     `json:"fecha_finalizacion" gorm:"column:fecha_finalizacion"`
}

func (Cart) TableName() string {
	return "carritos"
}

type CartItem struct {
	ID        uint      `json:"carrito_producto_id" gorm:"primaryKey;autoIncrement"`
	CartID    uint      `json:"carrito_id" gorm:"column:carrito_id;uniqueIndex:idx_carrito_producto"`
	ProductID uint      `json:"producto_id" gorm:"column:producto_id;uniqueIndex:idx_carrito_producto"`
	Quantity  int       `json:"cantidad" gorm:"column:cantidad;not null;check:cantidad > 0"`
	AddedAt   time.Time `json:"fecha_agregado" gorm:"column:fecha_agregado;autoCreateTime"`
}

func (CartItem) TableName() string {
	return "carrito_productos"
}
