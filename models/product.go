package models

import "time"

type Product struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"nombre" gorm:"column:nombre;type:varchar(255);not null"`
	Price       float64    `json:"precio" gorm:"column:precio;type:decimal(10,2);not null;check:precio > 0"`
	Stock       int        `json:"stock" gorm:"column:stock;not null;default:0;check:stock >= 0"`
	Description string     `json:"descripcion" gorm:"column:descripcion"`
	Category    string     `json:"categoria" gorm:"column:categoria;type:varchar(100);default:'General'"`
	CreatedAt   time.Time  `json:"fecha_creacion" gorm:"column:fecha_creacion;autoCreateTime"`
	ModifiedAt  *time.Time `json:"fecha_modificacion" gorm:"column:fecha_modificacion"`
	Active      bool       `json:"activo" gorm:"column:activo;default:true"`
}

func (Product) TableName() string {
	return "productos"
}
