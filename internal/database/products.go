package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"flashmart/internal/models"
)

// ActiveProducts lists active products, newest first, optionally narrowed
// by a case-insensitive substring match on name/description and by
// category slug.
func (d *Database) ActiveProducts(query, categorySlug string, limit int) ([]models.Product, error) {
	tx := d.db.Where("products.is_active = ?", true)
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("products.name ILIKE ? OR products.description ILIKE ?", like, like)
	}
	if categorySlug != "" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	var products []models.Product
	if err := tx.Order("products.created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ProductBySlug returns the active product with the given slug.
func (d *Database) ProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := d.db.Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return &product, nil
}

// ProductByID returns the product regardless of its active flag; callers
// decide how inactive products are treated.
func (d *Database) ProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := d.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &product, nil
}

// FlashSaleProducts lists active products whose flash window contains now,
// soonest-ending first.
func (d *Database) FlashSaleProducts(now time.Time, limit int) ([]models.Product, error) {
	var products []models.Product
	err := d.db.
		Where("is_active = ?", true).
		Where("flash_sale_price IS NOT NULL AND flash_sale_price <> 0").
		Where("flash_sale_start <= ? AND flash_sale_end >= ?", now, now).
		Order("flash_sale_end ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list flash sale products: %w", err)
	}
	return products, nil
}

// RelatedProducts lists active products sharing the given category,
// excluding the product itself. A nil category matches uncategorized
// products.
func (d *Database) RelatedProducts(categoryID *uint, excludeID uint, limit int) ([]models.Product, error) {
	tx := d.db.Where("is_active = ? AND id <> ?", true, excludeID)
	if categoryID != nil {
		tx = tx.Where("category_id = ?", *categoryID)
	} else {
		tx = tx.Where("category_id IS NULL")
	}

	var products []models.Product
	if err := tx.Order("created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	return products, nil
}

// FirstActiveProductImage returns the image of the newest active product in
// the category that has one, or "" when the category has no product images.
func (d *Database) FirstActiveProductImage(categoryID uint) (string, error) {
	var product models.Product
	err := d.db.
		Where("is_active = ? AND category_id = ? AND image_url <> ''", true, categoryID).
		Order("created_at DESC").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get category product image: %w", err)
	}
	return product.ImageURL, nil
}

// CreateProduct inserts a product, deriving its slug when blank.
func (d *Database) CreateProduct(product *models.Product) error {
	if err := d.db.Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// CountProducts reports how many products exist, active or not.
func (d *Database) CountProducts() (int64, error) {
	var count int64
	if err := d.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
