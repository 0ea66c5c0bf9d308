package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusNew       = "new"
	OrderStatusPaid      = "paid"
	OrderStatusShipping  = "shipping"
	OrderStatusDone      = "done"
	OrderStatusCancelled = "cancelled"
)

// Payment methods.
const (
	PaymentCashOnDelivery = "cod"
	PaymentBankTransfer   = "bank"
)

// Order, a persisted checkout. TotalAmount is fixed at creation time and
// never recomputed from the items afterwards.
type Order struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	OrderNumber   string          `json:"order_number" gorm:"size:32;uniqueIndex"`
	UserID        *uint           `json:"user_id"`
	CustomerName  string          `json:"customer_name" gorm:"size:200;not null"`
	Phone         string          `json:"phone" gorm:"size:30;not null"`
	Address       string          `json:"address" gorm:"size:500;not null"`
	PaymentMethod string          `json:"payment_method" gorm:"size:10"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
	Status        string          `json:"status" gorm:"size:20;default:'new'"`
	Items         []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem snapshots one cart line at checkout time so later product edits
// or deletions never alter the historical order.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"index"`
	ProductID   *uint           `json:"product_id"`
	ProductName string          `json:"product_name" gorm:"size:200"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:numeric(12,2)"`
}

// CheckoutForm carries the customer contact fields of a checkout submission.
type CheckoutForm struct {
	CustomerName  string `form:"customer_name" binding:"required"`
	Phone         string `form:"phone" binding:"required"`
	Address       string `form:"address" binding:"required"`
	PaymentMethod string `form:"payment_method" binding:"required,oneof=cod bank"`
}
