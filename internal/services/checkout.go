package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"flashmart/internal/models"
)

// ErrEmptyCart is returned when a checkout is submitted for a cart that
// materializes to no valid lines.
var ErrEmptyCart = errors.New("cart is empty")

// OrderStore is the slice of the persistence layer checkout needs.
type OrderStore interface {
	ProductStore
	CreateOrder(order *models.Order) error
}

// CheckoutService turns a session cart into a persisted order.
type CheckoutService struct {
	db   OrderStore
	cart *CartService
}

// NewCheckoutService creates a CheckoutService sharing the cart service's
// materialization.
func NewCheckoutService(db OrderStore, cart *CartService) *CheckoutService {
	return &CheckoutService{db: db, cart: cart}
}

// Checkout materializes the cart and persists one order plus one snapshot
// item per line, atomically. Prices and quantities are captured as of this
// moment; stock is neither re-validated nor decremented here. The caller
// clears the session cart only after success.
func (s *CheckoutService) Checkout(cart models.CartState, form models.CheckoutForm, userID *uint) (*models.Order, error) {
	lines, total := s.cart.Materialize(cart)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		OrderNumber:   generateOrderNumber(),
		UserID:        userID,
		CustomerName:  form.CustomerName,
		Phone:         form.Phone,
		Address:       form.Address,
		PaymentMethod: form.PaymentMethod,
		TotalAmount:   total,
		Status:        models.OrderStatusNew,
	}
	for _, line := range lines {
		productID := line.Product.ID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   &productID,
			ProductName: line.Product.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.Subtotal,
		})
	}

	if err := s.db.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return order, nil
}

func generateOrderNumber() string {
	return "FM-" + strings.ToUpper(uuid.New().String()[:8])
}
