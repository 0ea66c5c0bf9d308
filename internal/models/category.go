package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products and renders as a tile on the home page.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"size:120;uniqueIndex"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate derives the slug from the name when none was given.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

// CategoryTile is the home-page rendering of a category: its slug plus the
// best thumbnail available for it.
type CategoryTile struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}
