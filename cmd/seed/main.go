package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"flashmart/internal/config"
	"flashmart/internal/database"
	"flashmart/internal/models"
)

// Seeds the catalog with sample data when the tables are empty.
func main() {
	cfg := config.Load()

	db, err := database.New(cfg.DSN())
	if err != nil {
		log.Fatalf("Database init failed: %v", err)
	}

	count, err := db.CountProducts()
	if err != nil {
		log.Fatalf("Count products failed: %v", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d products, nothing to do", count)
		return
	}

	categories := []*models.Category{
		{Name: "Phones & Tablets", ImageURL: "https://images.flashmart.local/cat/phones.jpg"},
		{Name: "Home Appliances"},
		{Name: "Fashion"},
	}
	for _, cat := range categories {
		if err := db.CreateCategory(cat); err != nil {
			log.Fatalf("Seed category %q failed: %v", cat.Name, err)
		}
	}

	flashStart := time.Now().Add(-1 * time.Hour)
	flashEnd := time.Now().Add(24 * time.Hour)
	flashPrice := decimal.NewFromInt(249)

	products := []*models.Product{
		{
			CategoryID:     &categories[0].ID,
			Name:           "Galaxy A16 128GB",
			Price:          decimal.NewFromInt(299),
			ImageURL:       "https://images.flashmart.local/p/galaxy-a16.jpg",
			Stock:          25,
			Description:    "6.7\" display, 50MP camera, 5000mAh battery.",
			ColorOptions:   "Black, Silver, Light Green",
			Specifications: "Display: 6.7\"\nRAM: 8GB\nStorage: 128GB",
			FlashSalePrice: &flashPrice,
			FlashSaleStart: &flashStart,
			FlashSaleEnd:   &flashEnd,
			FlashSaleStock: 10,
			IsActive:       true,
		},
		{
			CategoryID:   &categories[1].ID,
			Name:         "Air Fryer 5.5L",
			Price:        decimal.NewFromFloat(89.90),
			ImageURL:     "https://images.flashmart.local/p/airfryer.jpg",
			Stock:        40,
			Description:  "Oil-free cooking with digital controls.",
			ColorOptions: "Black, White",
			IsActive:     true,
		},
		{
			CategoryID:  &categories[2].ID,
			Name:        "Unisex Hoodie",
			Price:       decimal.NewFromFloat(24.50),
			Stock:       120,
			Description: "Cotton blend, relaxed fit.",
			ColorOptions: "Grey, Navy, Burgundy",
			IsActive:    true,
		},
	}
	for _, p := range products {
		if err := db.CreateProduct(p); err != nil {
			log.Fatalf("Seed product %q failed: %v", p.Name, err)
		}
	}

	banners := []*models.Banner{
		{Title: "Mega Flash Sale", ImageURL: "https://images.flashmart.local/b/flash.jpg", Link: "/", IsFeatured: true, DiscountInfo: "Up to 50% off", IsActive: true, DisplayOrder: 1},
		{Title: "Free Shipping Week", ImageURL: "https://images.flashmart.local/b/shipping.jpg", IsFeatured: true, IsActive: true, DisplayOrder: 2},
	}
	for _, b := range banners {
		if err := db.CreateBanner(b); err != nil {
			log.Fatalf("Seed banner %q failed: %v", b.Title, err)
		}
	}

	log.Printf("Seeded %d categories, %d products, %d banners", len(categories), len(products), len(banners))
}
