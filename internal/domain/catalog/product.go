// Package catalog contains the read-only product model as seen by the cart
// core. Products are owned by the catalog; the cart holds only weak
// references (product IDs) plus immutable snapshots.
package catalog

import (
	"math"

	"github.com/google/uuid"
)

// Category identifies a product category
type Category string

// Product categories
const (
	CategoryFruitsVegetables Category = "fruits-vegetables"
	CategoryDairyEggs        Category = "dairy-eggs"
	CategoryMeatSeafood      Category = "meat-seafood"
	CategoryBakery           Category = "bakery"
	CategoryBeverages        Category = "beverages"
	CategorySnacks           Category = "snacks"
	CategoryPantry           Category = "pantry"
)

// Unit identifies the unit a product is sold in
type Unit string

// Supported units
const (
	UnitLb     Unit = "lb"
	UnitKg     Unit = "kg"
	UnitOz     Unit = "oz"
	UnitPiece  Unit = "piece"
	UnitDozen  Unit = "dozen"
	UnitGallon Unit = "gallon"
	UnitLiter  Unit = "liter"
)

// Product represents a catalog product. Read-only from the cart core's
// perspective; stock is never decremented here.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Unit        Unit      `json:"unit"`
	Category    Category  `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	Organic     bool      `json:"organic,omitempty"`
}

// UnitPolicy describes the quantity granularity for a unit
type UnitPolicy struct {
	// Discrete units accept whole quantities only
	Discrete bool
	// MinQuantity is the smallest orderable quantity
	MinQuantity float64
}

// unitPolicies is the explicit per-unit granularity table. Discrete units
// (piece, dozen) require integer quantities of at least 1; measured units
// allow tenths.
var unitPolicies = map[Unit]UnitPolicy{
	UnitPiece:  {Discrete: true, MinQuantity: 1},
	UnitDozen:  {Discrete: true, MinQuantity: 1},
	UnitLb:     {Discrete: false, MinQuantity: 0.1},
	UnitKg:     {Discrete: false, MinQuantity: 0.1},
	UnitOz:     {Discrete: false, MinQuantity: 0.1},
	UnitGallon: {Discrete: false, MinQuantity: 0.1},
	UnitLiter:  {Discrete: false, MinQuantity: 0.1},
}

// PolicyFor returns the granularity policy for a unit. Unknown units fall
// back to the discrete policy, the stricter of the two.
func PolicyFor(unit Unit) UnitPolicy {
	if policy, ok := unitPolicies[unit]; ok {
		return policy
	}
	return UnitPolicy{Discrete: true, MinQuantity: 1}
}

// ValidQuantity reports whether quantity satisfies the unit's granularity:
// a positive whole number for discrete units, a positive multiple of 0.1
// for measured units.
func ValidQuantity(unit Unit, quantity float64) bool {
	policy := PolicyFor(unit)
	if quantity < policy.MinQuantity {
		return false
	}
	if policy.Discrete {
		return quantity == math.Trunc(quantity)
	}
	// Measured quantities are held to one decimal place
	scaled := quantity * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
