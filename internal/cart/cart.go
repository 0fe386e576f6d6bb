// Package cart holds the in-memory transaction state built up at the
// register before checkout: line items, the active discount, and the
// payment tenders. Everything here is pure computation — no I/O.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot a line is created from. Price and tax
// rate are captured at add time and never re-read from the catalog.
type Product struct {
	ID        uuid.UUID
	SKU       string
	Name      string
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // percent, e.g. 17 for 17% embedded ICMS
}

// Customer identifies the buyer for loyalty purposes. Nil customer = walk-in.
type Customer struct {
	ID            uuid.UUID
	Name          string
	LoyaltyPoints int
}

// Line is a single cart item. UnitPrice and TaxRate are immutable snapshots;
// quantity changes recompute totals from those snapshots.
type Line struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Discount  decimal.Decimal
}

// Total returns unit price × quantity minus the line discount.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
}

// TaxAmount returns the tax embedded in the line total.
func (l Line) TaxAmount() decimal.Decimal {
	return l.Total().Mul(l.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
}

// reclampDiscount keeps the discount within [0, gross] after a quantity
// change, so a shrinking line can never push its total below zero.
func (l *Line) reclampDiscount() {
	gross := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
	l.Discount = clamp(l.Discount, gross)
}

// Cart is the active shopping cart. One discount at a time; lines merge by
// product. Not safe for concurrent use — one cart per register.
type Cart struct {
	lines      []Line
	customer   *Customer
	discount   *Discount
	pointValue decimal.Decimal
}

// New creates an empty cart. pointValue is the monetary value of one
// loyalty point (used by points discounts).
func New(pointValue decimal.Decimal) *Cart {
	return &Cart{pointValue: pointValue}
}

// AddItem appends a line for the product, or merges into the existing line
// when the product is already in the cart. Merging recomputes the line from
// the current snapshot price × new quantity — totals are never summed from
// stale line totals.
func (c *Cart) AddItem(p Product, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity += qty
			c.lines[i].reclampDiscount()
			return
		}
	}
	c.lines = append(c.lines, Line{
		ID:        uuid.New(),
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Quantity:  qty,
		UnitPrice: p.UnitPrice,
		TaxRate:   p.TaxRate,
	})
}

// RemoveItem deletes the line with the given id. Unknown ids are ignored.
func (c *Cart) RemoveItem(lineID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity. qty <= 0 removes the line.
func (c *Cart) SetQuantity(lineID uuid.UUID, qty int) {
	if qty <= 0 {
		c.RemoveItem(lineID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = qty
			c.lines[i].reclampDiscount()
			return
		}
	}
}

// SetLineDiscount sets a per-line discount, clamped to [0, line gross].
func (c *Cart) SetLineDiscount(lineID uuid.UUID, value decimal.Decimal) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			gross := c.lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(c.lines[i].Quantity)))
			c.lines[i].Discount = clamp(value, gross)
			return
		}
	}
}

// SetCustomer attaches (or detaches, with nil) the buyer.
func (c *Cart) SetCustomer(cust *Customer) { c.customer = cust }

// Customer returns the attached buyer, or nil.
func (c *Cart) Customer() *Customer { return c.customer }

// Clear resets the cart to empty, dropping lines, customer and discount.
func (c *Cart) Clear() {
	c.lines = nil
	c.customer = nil
	c.discount = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Subtotal is the sum of line totals before the cart-level discount.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// TaxAmount is the sum of per-line embedded tax. Informational only — tax
// is included in prices and never added on top of the total.
func (c *Cart) TaxAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.TaxAmount())
	}
	return sum
}

// Total is subtotal minus discount. The discount clamp guarantees the
// result is never negative.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Sub(c.DiscountAmount())
}

func clamp(v, max decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}
