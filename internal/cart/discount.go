package cart

import "github.com/shopspring/decimal"

// DiscountKind selects how the cart-level discount is computed.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
	DiscountPoints     DiscountKind = "points"
)

// Discount is the single active cart-level discount. Value means:
// percentage for DiscountPercentage, a monetary amount for DiscountFixed,
// and a number of loyalty points for DiscountPoints.
type Discount struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

// SetDiscount replaces the active discount. Out-of-range values are kept as
// given and clamped at computation time — clamping is the defined policy,
// not an input error.
func (c *Cart) SetDiscount(kind DiscountKind, value decimal.Decimal) {
	c.discount = &Discount{Kind: kind, Value: value}
}

// RemoveDiscount clears the active discount.
func (c *Cart) RemoveDiscount() { c.discount = nil }

// Discount returns the active discount, or nil.
func (c *Cart) Discount() *Discount { return c.discount }

// DiscountAmount computes the discount lazily from the current subtotal.
// All kinds clamp to [0, subtotal]; percentage additionally clamps the rate
// to [0, 100]; points are capped by the customer's available balance.
func (c *Cart) DiscountAmount() decimal.Decimal {
	if c.discount == nil {
		return decimal.Zero
	}
	subtotal := c.Subtotal()

	switch c.discount.Kind {
	case DiscountPercentage:
		pct := clamp(c.discount.Value, decimal.NewFromInt(100))
		return subtotal.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixed:
		return clamp(c.discount.Value, subtotal)
	case DiscountPoints:
		return clamp(c.pointsMonetaryValue(), subtotal)
	default:
		return decimal.Zero
	}
}

// PointsSpent returns how many loyalty points the active discount consumes:
// the requested points capped by the customer's balance and by the number
// of points the subtotal can absorb.
func (c *Cart) PointsSpent() int {
	if c.discount == nil || c.discount.Kind != DiscountPoints || c.customer == nil {
		return 0
	}
	points := int(c.discount.Value.IntPart())
	if points < 0 {
		return 0
	}
	if points > c.customer.LoyaltyPoints {
		points = c.customer.LoyaltyPoints
	}
	if c.pointValue.IsPositive() {
		absorbable := int(c.Subtotal().Div(c.pointValue).IntPart())
		if points > absorbable {
			points = absorbable
		}
	}
	return points
}

func (c *Cart) pointsMonetaryValue() decimal.Decimal {
	if c.customer == nil {
		return decimal.Zero
	}
	requested := c.discount.Value
	if requested.IsNegative() {
		return decimal.Zero
	}
	available := decimal.NewFromInt(int64(c.customer.LoyaltyPoints))
	if requested.GreaterThan(available) {
		requested = available
	}
	return requested.Mul(c.pointValue)
}
