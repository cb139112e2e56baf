// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run auto-migration
	err = db.AutoMigrate(
		&gormModels.ProductModel{},
		&gormModels.CartModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the catalog with initial products
func SeedDatabase(db *gorm.DB) error {
	// Check if data already exists
	var productCount int64
	db.Model(&gormModels.ProductModel{}).Count(&productCount)
	if productCount > 0 {
		return nil // Already seeded
	}

	products := []gormModels.ProductModel{
		{
			Name:        "Organic Bananas",
			Description: "Sweet, ripe organic bananas grown without pesticides",
			Price:       1.99,
			Stock:       150,
			Unit:        "lb",
			Category:    "fruits-vegetables",
			Image:       "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=400",
			Organic:     true,
		},
		{
			Name:        "Honeycrisp Apples",
			Description: "Crisp and juicy apples, perfect for snacking or baking",
			Price:       3.49,
			Stock:       80,
			Unit:        "lb",
			Category:    "fruits-vegetables",
			Image:       "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=400",
		},
		{
			Name:        "Roma Tomatoes",
			Description: "Firm, meaty tomatoes ideal for sauces and salads",
			Price:       2.29,
			Stock:       60,
			Unit:        "lb",
			Category:    "fruits-vegetables",
			Image:       "https://images.unsplash.com/photo-1546470427-227c7369a9b4?w=400",
		},
		{
			Name:        "Baby Spinach",
			Description: "Tender baby spinach leaves, triple washed",
			Price:       3.99,
			Stock:       40,
			Unit:        "piece",
			Category:    "fruits-vegetables",
			Image:       "https://images.unsplash.com/photo-1576045057995-568f588f82fb?w=400",
			Organic:     true,
		},
		{
			Name:        "Yellow Onions",
			Description: "All-purpose cooking onions with a sharp, sweet flavor",
			Price:       1.49,
			Stock:       100,
			Unit:        "lb",
			Category:    "fruits-vegetables",
			Image:       "https://images.unsplash.com/photo-1518977956812-cd3dbadaaf31?w=400",
		},
		{
			Name:        "Garlic",
			Description: "Fresh garlic bulbs",
			Price:       0.79,
			Stock:       120,
			Unit:        "piece",
			Category:    "fruits-vegetables",
			Image:       "https://images.unsplash.com/photo-1540148426945-6cf22a6b2383?w=400",
		},
		{
			Name:        "Whole Milk",
			Description: "Grade A pasteurized whole milk",
			Price:       4.29,
			Stock:       50,
			Unit:        "gallon",
			Category:    "dairy-eggs",
			Image:       "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=400",
		},
		{
			Name:        "Large Brown Eggs",
			Description: "Farm fresh cage-free brown eggs",
			Price:       5.99,
			Stock:       45,
			Unit:        "dozen",
			Category:    "dairy-eggs",
			Image:       "https://images.unsplash.com/photo-1506976785307-8732e854ad03?w=400",
		},
		{
			Name:        "Sharp Cheddar Cheese",
			Description: "Aged sharp cheddar, great for melting",
			Price:       6.49,
			Stock:       35,
			Unit:        "piece",
			Category:    "dairy-eggs",
			Image:       "https://images.unsplash.com/photo-1618164436241-4473940d1f5c?w=400",
		},
		{
			Name:        "Unsalted Butter",
			Description: "Sweet cream unsalted butter for cooking and baking",
			Price:       4.99,
			Stock:       55,
			Unit:        "piece",
			Category:    "dairy-eggs",
			Image:       "https://images.unsplash.com/photo-1589985270826-4b7bb135bc9d?w=400",
		},
		{
			Name:        "Chicken Breast",
			Description: "Boneless skinless chicken breast",
			Price:       5.99,
			Stock:       30,
			Unit:        "lb",
			Category:    "meat-seafood",
			Image:       "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=400",
		},
		{
			Name:        "Ground Beef",
			Description: "85% lean ground beef",
			Price:       6.99,
			Stock:       25,
			Unit:        "lb",
			Category:    "meat-seafood",
			Image:       "https://images.unsplash.com/photo-1603048297172-c92544798d5a?w=400",
		},
		{
			Name:        "Atlantic Salmon Fillet",
			Description: "Fresh Atlantic salmon, skin on",
			Price:       12.99,
			Stock:       20,
			Unit:        "lb",
			Category:    "meat-seafood",
			Image:       "https://images.unsplash.com/photo-1574781330855-d0db8cc6a79c?w=400",
		},
		{
			Name:        "Sourdough Bread",
			Description: "Artisan sourdough loaf, baked daily",
			Price:       4.49,
			Stock:       25,
			Unit:        "piece",
			Category:    "bakery",
			Image:       "https://images.unsplash.com/photo-1585478259715-876acc5be8eb?w=400",
		},
		{
			Name:        "Flour Tortillas",
			Description: "Soft flour tortillas, 10 count",
			Price:       2.99,
			Stock:       40,
			Unit:        "piece",
			Category:    "bakery",
			Image:       "https://images.unsplash.com/photo-1565299585323-38d6b0865b47?w=400",
		},
		{
			Name:        "Orange Juice",
			Description: "100% pure squeezed orange juice, no pulp",
			Price:       5.49,
			Stock:       35,
			Unit:        "liter",
			Category:    "beverages",
			Image:       "https://images.unsplash.com/photo-1600271886742-f049cd451bba?w=400",
		},
		{
			Name:        "Olive Oil",
			Description: "Extra virgin olive oil, cold pressed",
			Price:       9.99,
			Stock:       30,
			Unit:        "liter",
			Category:    "pantry",
			Image:       "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=400",
		},
		{
			Name:        "Jasmine Rice",
			Description: "Fragrant long-grain jasmine rice",
			Price:       3.79,
			Stock:       70,
			Unit:        "lb",
			Category:    "pantry",
			Image:       "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=400",
		},
		{
			Name:        "Spaghetti",
			Description: "Classic durum wheat spaghetti",
			Price:       1.89,
			Stock:       90,
			Unit:        "piece",
			Category:    "pantry",
			Image:       "https://images.unsplash.com/photo-1551462147-ff29053bfc14?w=400",
		},
		{
			Name:        "Tortilla Chips",
			Description: "Restaurant-style corn tortilla chips",
			Price:       3.29,
			Stock:       50,
			Unit:        "piece",
			Category:    "snacks",
			Image:       "https://images.unsplash.com/photo-1613919113640-25732ec5e61f?w=400",
		},
	}

	for _, product := range products {
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
	}

	return nil
}
