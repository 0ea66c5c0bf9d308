package models

import "github.com/shopspring/decimal"

// CartState maps a product id in string form to the requested quantity.
// It lives in the visitor's session, never in the database, and is
// advisory: quantities are re-checked against live stock whenever the cart
// is read or checked out.
type CartState map[string]int

// Clone returns an independent copy so services can mutate freely.
func (c CartState) Clone() CartState {
	out := make(CartState, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// CartLine is one materialized cart row: the live product joined with the
// requested quantity and priced at the effective unit price.
type CartLine struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
