// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductModel represents the GORM model for catalog products
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"`
	Unit        string    `gorm:"type:varchar(20);not null;default:'piece'"`
	Category    string    `gorm:"type:varchar(50);index"`
	Image       string    `gorm:"type:text"`
	Organic     bool      `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartModel represents the GORM model for per-user carts
type CartModel struct {
	ID        uuid.UUID     `gorm:"type:char(36);primaryKey"`
	UserID    string        `gorm:"type:varchar(255);uniqueIndex;not null"`
	Items     CartItemsJSON `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItemModel is the persisted shape of a single cart line
type CartItemModel struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Image     string  `json:"image,omitempty"`
	Organic   bool    `json:"organic,omitempty"`
}

// CartItemsJSON custom type for handling cart line slices in JSON
type CartItemsJSON []CartItemModel

// Scan implements the sql.Scanner interface
func (c *CartItemsJSON) Scan(value interface{}) error {
	if value == nil {
		*c = CartItemsJSON{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into CartItemsJSON", value)
	}
}

// Value implements the driver.Valuer interface
func (c CartItemsJSON) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	return json.Marshal(c)
}

// BeforeCreate hook for ProductModel
func (p *ProductModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for CartModel
func (c *CartModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (ProductModel) TableName() string {
	return "products"
}

func (CartModel) TableName() string {
	return "carts"
}
