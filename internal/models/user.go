package models

import "time"

// User, a registered customer account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
