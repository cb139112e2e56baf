// Package cart contains the core domain logic for per-user shopping carts:
// line items with frozen price/name snapshots, order summaries, and the
// cached AI recipe suggestions derived from cart contents.
package cart

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultTaxRate is the sales tax applied to order summaries
const DefaultTaxRate = 0.08

// CartItem is a single line item. Name and Price are snapshots captured at
// add time and are never refreshed from the catalog; only Quantity is ever
// revalidated against live stock.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Image     string    `json:"image,omitempty"`
	Organic   bool      `json:"organic,omitempty"`
}

// Cart is the per-user collection of line items awaiting checkout.
// Items preserve insertion order. Invariant: no two items share a ProductID.
type Cart struct {
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart creates an empty cart for a user
func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItem returns a pointer to the line item for productID, or nil
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem appends a new line item. The caller is responsible for the
// no-duplicate-product invariant.
func (c *Cart) AddItem(item CartItem) {
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
}

// SetQuantity updates the quantity of an existing line item.
// Returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity float64) bool {
	item := c.FindItem(productID)
	if item == nil {
		return false
	}
	item.Quantity = quantity
	c.UpdatedAt = time.Now()
	return true
}

// RemoveItem filters the line item out. Removing an absent product is a
// no-op, so the operation is idempotent.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
	c.UpdatedAt = time.Now()
}

// Clear removes all line items
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart, used to keep failed mutations from
// leaving partial writes behind.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Items = make([]CartItem, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}

// Summary holds the computed totals for a cart
type Summary struct {
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// ComputeSummary calculates cart totals as a pure function over the cart
// snapshot. Monetary values are rounded to 2 decimal places for display.
// ItemCount is the number of distinct line items, not units.
func ComputeSummary(c *Cart, taxRate float64) Summary {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * item.Quantity
	}
	tax := subtotal * taxRate

	return Summary{
		Subtotal:  round2(subtotal),
		Tax:       round2(tax),
		Total:     round2(subtotal + tax),
		ItemCount: len(c.Items),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
