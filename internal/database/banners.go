package database

import (
	"fmt"

	"flashmart/internal/models"
)

// FeaturedBanners lists active featured banners in display order, newest
// first within the same position.
func (d *Database) FeaturedBanners() ([]models.Banner, error) {
	var banners []models.Banner
	err := d.db.
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("display_order ASC, created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, fmt.Errorf("list featured banners: %w", err)
	}
	return banners, nil
}

// CreateBanner inserts a banner.
func (d *Database) CreateBanner(banner *models.Banner) error {
	if err := d.db.Create(banner).Error; err != nil {
		return fmt.Errorf("create banner: %w", err)
	}
	return nil
}
