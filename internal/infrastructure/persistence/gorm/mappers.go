package gorm

import (
	"github.com/google/uuid"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
)

// toDomainCart converts a CartModel to a domain cart
func toDomainCart(m *CartModel) *cart.Cart {
	items := make([]cart.CartItem, len(m.Items))
	for i, it := range m.Items {
		id, _ := uuid.Parse(it.ProductID)
		items[i] = cart.CartItem{
			ProductID: id,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Image:     it.Image,
			Organic:   it.Organic,
		}
	}
	return &cart.Cart{
		UserID:    m.UserID,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toCartModel converts a domain cart to its persisted shape
func toCartModel(c *cart.Cart) *CartModel {
	items := make(CartItemsJSON, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItemModel{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Image:     it.Image,
			Organic:   it.Organic,
		}
	}
	return &CartModel{
		UserID:    c.UserID,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// toDomainProduct converts a ProductModel to a domain product
func toDomainProduct(m *ProductModel) *catalog.Product {
	return &catalog.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		Unit:        catalog.Unit(m.Unit),
		Category:    catalog.Category(m.Category),
		Image:       m.Image,
		Organic:     m.Organic,
	}
}
