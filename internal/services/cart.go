package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"flashmart/internal/models"
)

const (
	// maxLineQuantity caps any single cart line.
	maxLineQuantity = 999
	// unlimitedStock stands in for "no stock limit" in the add clamp.
	unlimitedStock = 9999
)

// ProductStore is the slice of the persistence layer the cart needs.
type ProductStore interface {
	ProductByID(id uint) (*models.Product, error)
}

// Notice is the user-facing outcome of a cart mutation. Cart problems are
// soft: they become flash messages, never request failures.
type Notice struct {
	Level string // success, info, warning, error
	Text  string
}

// CartService applies cart mutations to an explicit CartState value and
// hands the new state back; the caller owns persisting it to the session.
type CartService struct {
	db ProductStore
}

// NewCartService creates a CartService over the given product store.
func NewCartService(db ProductStore) *CartService {
	return &CartService{db: db}
}

// Add puts requested more units of the product into the cart, clamped to
// [1,999] per request and to min(current+requested, stock, 999) overall.
// The cart is returned untouched when the product is missing, inactive or
// out of stock.
func (s *CartService) Add(cart models.CartState, productID string, requested int) (models.CartState, Notice) {
	product, err := s.activeProduct(productID)
	if err != nil {
		return cart, Notice{Level: "error", Text: "Product not found."}
	}
	if product.Stock <= 0 {
		return cart, Notice{Level: "warning", Text: fmt.Sprintf("%s is out of stock.", product.Name)}
	}

	if requested < 1 {
		requested = 1
	}
	if requested > maxLineQuantity {
		requested = maxLineQuantity
	}

	stockLimit := product.Stock
	if stockLimit <= 0 {
		stockLimit = unlimitedStock
	}

	next := cart.Clone()
	current := next[productID]
	want := current + requested
	newQty := want
	if newQty > stockLimit {
		newQty = stockLimit
	}
	if newQty > maxLineQuantity {
		newQty = maxLineQuantity
	}
	next[productID] = newQty

	if newQty < want {
		return next, Notice{Level: "warning", Text: fmt.Sprintf("Maximum available quantity of %s reached (%d in cart).", product.Name, newQty)}
	}
	return next, Notice{Level: "success", Text: fmt.Sprintf("Added %d × %s to your cart.", newQty-current, product.Name)}
}

// Update sets the line quantity, clamped to [0,999]. Zero, a vanished or
// inactive product, or empty stock all remove the line; a quantity above
// stock is clamped down with a warning.
func (s *CartService) Update(cart models.CartState, productID string, qty int) (models.CartState, Notice) {
	if qty < 0 {
		qty = 0
	}
	if qty > maxLineQuantity {
		qty = maxLineQuantity
	}

	next := cart.Clone()

	product, err := s.activeProduct(productID)
	if err != nil {
		delete(next, productID)
		return next, Notice{Level: "error", Text: "Product is no longer available and was removed from your cart."}
	}
	if qty == 0 {
		delete(next, productID)
		return next, Notice{Level: "info", Text: fmt.Sprintf("%s removed from your cart.", product.Name)}
	}
	if product.Stock <= 0 {
		delete(next, productID)
		return next, Notice{Level: "warning", Text: fmt.Sprintf("%s is out of stock and was removed from your cart.", product.Name)}
	}
	if qty > product.Stock {
		next[productID] = product.Stock
		return next, Notice{Level: "warning", Text: fmt.Sprintf("Only %d × %s in stock; quantity reduced.", product.Stock, product.Name)}
	}

	next[productID] = qty
	return next, Notice{Level: "success", Text: "Cart updated."}
}

// Remove deletes the line. Removing an absent line is a no-op.
func (s *CartService) Remove(cart models.CartState, productID string) models.CartState {
	next := cart.Clone()
	delete(next, productID)
	return next
}

// Clear returns a fresh empty cart.
func (s *CartService) Clear() models.CartState {
	return models.CartState{}
}

// Materialize prices the cart: one line per entry whose product still
// exists, at the effective unit price, plus the running total. Entries for
// deleted products are dropped silently; the cart is advisory state and
// this is a best-effort read.
func (s *CartService) Materialize(cart models.CartState) ([]models.CartLine, decimal.Decimal) {
	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.ParseUint(ids[i], 10, 64)
		b, _ := strconv.ParseUint(ids[j], 10, 64)
		return a < b
	})

	var lines []models.CartLine
	total := decimal.Zero
	for _, idStr := range ids {
		qty := cart[idStr]
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}
		product, err := s.db.ProductByID(uint(id))
		if err != nil {
			continue
		}
		unit := product.EffectivePrice()
		subtotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		lines = append(lines, models.CartLine{
			Product:   *product,
			Quantity:  qty,
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	return lines, total
}

// Count sums the quantities in the cart for the header badge.
func (s *CartService) Count(cart models.CartState) int {
	count := 0
	for _, qty := range cart {
		count += qty
	}
	return count
}

func (s *CartService) activeProduct(productID string) (*models.Product, error) {
	id, err := strconv.ParseUint(productID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad product id %q: %w", productID, err)
	}
	product, err := s.db.ProductByID(uint(id))
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product %d is inactive", product.ID)
	}
	return product, nil
}
