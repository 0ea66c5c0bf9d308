package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"flashmart/internal/database"
	"flashmart/internal/models"
)

type fakeStore struct {
	products map[uint]*models.Product
	orders   []*models.Order
	failNext error
}

func (f *fakeStore) ProductByID(id uint) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, database.ErrProductNotFound
}

func (f *fakeStore) CreateOrder(order *models.Order) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	order.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, order)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newStore() *fakeStore {
	return &fakeStore{products: map[uint]*models.Product{
		1: {ID: 1, Name: "Widget", Price: dec("100"), Stock: 5, IsActive: true},
		2: {ID: 2, Name: "Gadget", Price: dec("25.50"), Stock: 100, IsActive: true},
		3: {ID: 3, Name: "Retired", Price: dec("10"), Stock: 4, IsActive: false},
		4: {ID: 4, Name: "Sold Out", Price: dec("15"), Stock: 0, IsActive: true},
	}}
}

func TestAddThenAddClampsToStock(t *testing.T) {
	svc := NewCartService(newStore())

	cart, notice := svc.Add(models.CartState{}, "1", 3)
	if cart["1"] != 3 {
		t.Fatalf("cart[1] = %d, want 3", cart["1"])
	}
	if notice.Level != "success" {
		t.Errorf("first add notice level = %s, want success", notice.Level)
	}

	cart, notice = svc.Add(cart, "1", 4)
	if cart["1"] != 5 {
		t.Errorf("cart[1] = %d, want 5 (clamped from 7)", cart["1"])
	}
	if notice.Level != "warning" {
		t.Errorf("clamped add notice level = %s, want warning", notice.Level)
	}
}

func TestAddClampLaw(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		requested int
		stock     int
		want      int
	}{
		{"simple", 0, 2, 10, 2},
		{"accumulates", 3, 2, 10, 5},
		{"stock bound", 3, 9, 5, 5},
		{"line cap", 500, 600, 5000, 999},
		{"requested below one becomes one", 0, 0, 10, 1},
		{"requested above cap is clamped first", 0, 5000, 5000, 999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			store.products[1].Stock = tt.stock
			svc := NewCartService(store)

			cart := models.CartState{}
			if tt.current > 0 {
				cart["1"] = tt.current
			}
			cart, _ = svc.Add(cart, "1", tt.requested)
			if cart["1"] != tt.want {
				t.Errorf("cart[1] = %d, want %d", cart["1"], tt.want)
			}
			if cart["1"] > tt.stock || cart["1"] > 999 {
				t.Errorf("cart[1] = %d exceeds a bound (stock %d, cap 999)", cart["1"], tt.stock)
			}
		})
	}
}

func TestAddUnavailableProductLeavesCartAlone(t *testing.T) {
	svc := NewCartService(newStore())
	cart := models.CartState{"2": 1}

	for _, id := range []string{"99", "3", "not-a-number"} {
		next, notice := svc.Add(cart, id, 1)
		if len(next) != 1 || next["2"] != 1 {
			t.Errorf("Add(%q) mutated the cart: %v", id, next)
		}
		if notice.Level != "error" {
			t.Errorf("Add(%q) notice level = %s, want error", id, notice.Level)
		}
	}
}

func TestAddOutOfStock(t *testing.T) {
	svc := NewCartService(newStore())

	cart, notice := svc.Add(models.CartState{}, "4", 1)
	if _, ok := cart["4"]; ok {
		t.Error("out-of-stock product was added to the cart")
	}
	if notice.Level != "warning" {
		t.Errorf("notice level = %s, want warning", notice.Level)
	}
}

func TestUpdateZeroRemovesLine(t *testing.T) {
	svc := NewCartService(newStore())

	cart, notice := svc.Update(models.CartState{"1": 2}, "1", 0)
	if _, ok := cart["1"]; ok {
		t.Error("Update(0) left the line in place")
	}
	if notice.Level != "info" {
		t.Errorf("notice level = %s, want info", notice.Level)
	}
}

func TestUpdateClampsToStock(t *testing.T) {
	svc := NewCartService(newStore())

	cart, notice := svc.Update(models.CartState{"1": 2}, "1", 50)
	if cart["1"] != 5 {
		t.Errorf("cart[1] = %d, want 5", cart["1"])
	}
	if notice.Level != "warning" {
		t.Errorf("notice level = %s, want warning", notice.Level)
	}
}

func TestUpdateRemovesUnavailableLines(t *testing.T) {
	svc := NewCartService(newStore())

	tests := []struct {
		name      string
		productID string
		wantLevel string
	}{
		{"deleted product", "99", "error"},
		{"inactive product", "3", "error"},
		{"out of stock", "4", "warning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, notice := svc.Update(models.CartState{tt.productID: 2}, tt.productID, 2)
			if _, ok := cart[tt.productID]; ok {
				t.Error("line should have been removed")
			}
			if notice.Level != tt.wantLevel {
				t.Errorf("notice level = %s, want %s", notice.Level, tt.wantLevel)
			}
		})
	}
}

func TestUpdateStoresQuantity(t *testing.T) {
	svc := NewCartService(newStore())

	cart, notice := svc.Update(models.CartState{"2": 1}, "2", 7)
	if cart["2"] != 7 {
		t.Errorf("cart[2] = %d, want 7", cart["2"])
	}
	if notice.Level != "success" {
		t.Errorf("notice level = %s, want success", notice.Level)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc := NewCartService(newStore())

	cart := svc.Remove(models.CartState{"1": 2}, "1")
	if len(cart) != 0 {
		t.Errorf("cart not empty after Remove: %v", cart)
	}
	cart = svc.Remove(cart, "1")
	if len(cart) != 0 {
		t.Errorf("second Remove changed the cart: %v", cart)
	}
}

func TestClear(t *testing.T) {
	svc := NewCartService(newStore())
	if cart := svc.Clear(); len(cart) != 0 {
		t.Errorf("Clear returned non-empty cart: %v", cart)
	}
}

func TestMaterializeEmptyCart(t *testing.T) {
	svc := NewCartService(newStore())

	lines, total := svc.Materialize(models.CartState{})
	if len(lines) != 0 {
		t.Errorf("lines = %v, want none", lines)
	}
	if !total.IsZero() {
		t.Errorf("total = %s, want 0", total)
	}
}

func TestMaterializeDropsDeletedProducts(t *testing.T) {
	svc := NewCartService(newStore())

	lines, total := svc.Materialize(models.CartState{"1": 2, "99": 3})
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].Product.ID != 1 || lines[0].Quantity != 2 {
		t.Errorf("unexpected line: %+v", lines[0])
	}
	if !total.Equal(dec("200")) {
		t.Errorf("total = %s, want 200", total)
	}
}

func TestMaterializeUsesEffectivePrice(t *testing.T) {
	store := newStore()
	flash := dec("80")
	start := time.Now().Add(24 * time.Hour)
	end := time.Now().Add(48 * time.Hour)
	store.products[1].FlashSalePrice = &flash
	store.products[1].FlashSaleStart = &start
	store.products[1].FlashSaleEnd = &end
	svc := NewCartService(store)

	// Flash price applies even though the window has not opened yet.
	lines, total := svc.Materialize(models.CartState{"1": 2, "2": 1})
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !lines[0].UnitPrice.Equal(dec("80")) {
		t.Errorf("unit price = %s, want 80", lines[0].UnitPrice)
	}
	if !lines[0].Subtotal.Equal(dec("160")) {
		t.Errorf("subtotal = %s, want 160", lines[0].Subtotal)
	}
	if !total.Equal(dec("185.50")) {
		t.Errorf("total = %s, want 185.50", total)
	}
}

func TestCount(t *testing.T) {
	svc := NewCartService(newStore())
	if got := svc.Count(models.CartState{"1": 2, "2": 5}); got != 7 {
		t.Errorf("Count = %d, want 7", got)
	}
}
