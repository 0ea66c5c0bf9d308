package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"flashmart/internal/models"
)

// CreateOrder persists the order together with all of its items in one
// transaction. If any item insert fails the order row is rolled back too.
func (d *Database) CreateOrder(order *models.Order) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// OrderByNumber returns the order with its items.
func (d *Database) OrderByNumber(number string) (*models.Order, error) {
	var order models.Order
	err := d.db.Preload("Items").Where("order_number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return &order, nil
}
