package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product, a catalog item with optional flash-sale pricing.
type Product struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	CategoryID     *uint            `json:"category_id" gorm:"index"`
	Category       *Category        `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Name           string           `json:"name" gorm:"size:200;not null"`
	Slug           string           `json:"slug" gorm:"size:220;uniqueIndex"`
	Price          decimal.Decimal  `json:"price" gorm:"type:numeric(12,2)"`
	ImageURL       string           `json:"image_url"`
	Stock          int              `json:"stock"`
	Description    string           `json:"description"`
	ColorOptions   string           `json:"color_options" gorm:"size:200"`
	Specifications string           `json:"specifications"`
	FlashSalePrice *decimal.Decimal `json:"flash_sale_price" gorm:"type:numeric(12,2)"`
	FlashSaleStart *time.Time       `json:"flash_sale_start"`
	FlashSaleEnd   *time.Time       `json:"flash_sale_end"`
	FlashSaleStock int              `json:"flash_sale_stock"`
	IsActive       bool             `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BeforeCreate derives the slug from the name when none was given.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return nil
}

// ColorList returns the trimmed, non-empty entries of ColorOptions.
func (p Product) ColorList() []string {
	if p.ColorOptions == "" {
		return nil
	}
	var colors []string
	for _, part := range strings.Split(p.ColorOptions, ",") {
		if c := strings.TrimSpace(part); c != "" {
			colors = append(colors, c)
		}
	}
	return colors
}

// IsInFlashSale reports whether the flash price should be displayed right
// now: a non-zero flash price, the sale window contains now, and when a
// separate flash allotment is configured there is still stock to back it.
func (p Product) IsInFlashSale(now time.Time) bool {
	if p.FlashSalePrice == nil || p.FlashSalePrice.IsZero() {
		return false
	}
	if p.FlashSaleStart == nil || p.FlashSaleEnd == nil {
		return false
	}
	if now.Before(*p.FlashSaleStart) || now.After(*p.FlashSaleEnd) {
		return false
	}
	if p.FlashSaleStock > 0 {
		return p.Stock > 0
	}
	return true
}

// EffectivePrice returns the flash-sale price whenever one is set and
// non-zero, the list price otherwise. The sale window is intentionally not
// checked here; display code gates on IsInFlashSale instead.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.FlashSalePrice != nil && !p.FlashSalePrice.IsZero() {
		return *p.FlashSalePrice
	}
	return p.Price
}

// FlashDiscountPercent returns round((1 - flash/price) * 100), never below
// zero, and zero when there is no usable flash price or list price.
func (p Product) FlashDiscountPercent() int {
	if p.FlashSalePrice == nil || p.FlashSalePrice.IsZero() || !p.Price.IsPositive() {
		return 0
	}
	ratio := p.FlashSalePrice.Div(p.Price)
	pct := decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct < 0 {
		return 0
	}
	return int(pct)
}
