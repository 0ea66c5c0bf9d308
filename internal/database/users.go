package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"flashmart/internal/models"
)

// CreateUser inserts a user account.
func (d *Database) CreateUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UserByUsername returns the account with the given username.
func (d *Database) UserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

// UserByEmail returns the account with the given email.
func (d *Database) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}
