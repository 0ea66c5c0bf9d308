package models

import "time"

// Banner is purely presentational carousel content.
type Banner struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:200;not null"`
	ImageURL     string    `json:"image_url" gorm:"not null"`
	Link         string    `json:"link"`
	IsFeatured   bool      `json:"is_featured"`
	DiscountInfo string    `json:"discount_info" gorm:"size:100"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
