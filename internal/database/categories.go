package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"flashmart/internal/models"
)

// Categories lists all categories ordered by name.
func (d *Database) Categories() ([]models.Category, error) {
	var categories []models.Category
	if err := d.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CategoryBySlug returns the category with the given slug.
func (d *Database) CategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := d.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return &category, nil
}

// CreateCategory inserts a category, deriving its slug when blank.
func (d *Database) CreateCategory(category *models.Category) error {
	if err := d.db.Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}
