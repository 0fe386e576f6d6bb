package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(name, price, taxRate string) Product {
	return Product{
		ID:        uuid.New(),
		SKU:       "SKU-" + name,
		Name:      name,
		UnitPrice: dec(price),
		TaxRate:   dec(taxRate),
	}
}

func TestAddItem_MergesByProduct(t *testing.T) {
	c := New(dec("0.05"))
	p := product("Café 500g", "12.50", "0")

	c.AddItem(p, 2)
	c.AddItem(p, 3)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "62.5", c.Subtotal().String())
}

func TestAddItem_NonPositiveQuantityIgnored(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Arroz 5kg", "22.90", "0"), 0)
	c.AddItem(product("Feijão 1kg", "8.75", "0"), -2)
	assert.True(t, c.IsEmpty())
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Leite 1L", "4.99", "0"), 3)
	line := c.Lines()[0]

	c.SetQuantity(line.ID, 0)
	assert.True(t, c.IsEmpty())
}

func TestSetQuantity_ReclampsLineDiscount(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Biscoito", "3.00", "0"), 2) // gross = 6.00
	line := c.Lines()[0]
	c.SetLineDiscount(line.ID, dec("6.00"))

	c.SetQuantity(line.ID, 1) // gross shrinks to 3.00

	assert.Equal(t, "3", c.Lines()[0].Discount.String())
	assert.Equal(t, "0", c.Subtotal().String())
	assert.Equal(t, "0", c.Total().String())
	assert.False(t, c.Total().IsNegative())
}

func TestSetQuantity_Idempotent(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Suco 1L", "7.50", "0"), 4)
	line := c.Lines()[0]
	c.SetLineDiscount(line.ID, dec("5.00"))

	c.SetQuantity(line.ID, 2)
	once := c.Lines()[0]
	onceTotal := c.Total()

	c.SetQuantity(line.ID, 2)
	twice := c.Lines()[0]

	assert.Equal(t, once.Quantity, twice.Quantity)
	assert.True(t, once.Discount.Equal(twice.Discount))
	assert.True(t, onceTotal.Equal(c.Total()))
}

func TestLineDiscount_ClampedToGross(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Biscoito", "3.00", "0"), 2) // gross = 6.00
	line := c.Lines()[0]

	c.SetLineDiscount(line.ID, dec("10.00"))
	assert.Equal(t, "6", c.Lines()[0].Discount.String())
	assert.Equal(t, "0", c.Subtotal().String())

	c.SetLineDiscount(line.ID, dec("-1"))
	assert.Equal(t, "0", c.Lines()[0].Discount.String())
}

func TestTaxAmount_EmbeddedPerLine(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Refrigerante 2L", "10.00", "17"), 1)
	c.AddItem(product("Pão francês", "0.80", "0"), 10)

	// 10.00 × 17% = 1.70; bread is tax-free
	assert.Equal(t, "1.7", c.TaxAmount().String())
	// Tax is embedded, never added on top
	assert.Equal(t, "18", c.Total().String())
}

func TestDiscount_PercentageClamped(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Queijo 500g", "20.00", "0"), 1)

	c.SetDiscount(DiscountPercentage, dec("150"))
	assert.Equal(t, "20", c.DiscountAmount().String()) // clamped to 100%
	assert.Equal(t, "0", c.Total().String())

	c.SetDiscount(DiscountPercentage, dec("10"))
	assert.Equal(t, "2", c.DiscountAmount().String())
	assert.Equal(t, "18", c.Total().String())
}

func TestDiscount_FixedClampedToSubtotal(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Manteiga", "9.00", "0"), 1)

	c.SetDiscount(DiscountFixed, dec("50.00"))
	assert.Equal(t, "9", c.DiscountAmount().String())
	assert.Equal(t, "0", c.Total().String()) // never negative
}

func TestDiscount_PointsCappedByBalance(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Azeite 500ml", "30.00", "0"), 1)
	c.SetCustomer(&Customer{ID: uuid.New(), Name: "Maria", LoyaltyPoints: 100})

	// Requests 500 points but only 100 available: 100 × 0.05 = 5.00
	c.SetDiscount(DiscountPoints, dec("500"))
	assert.Equal(t, "5", c.DiscountAmount().String())
	assert.Equal(t, 100, c.PointsSpent())
}

func TestDiscount_PointsCappedBySubtotal(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Bala", "1.00", "0"), 1)
	c.SetCustomer(&Customer{ID: uuid.New(), Name: "João", LoyaltyPoints: 1000})

	// Subtotal absorbs at most 1.00 / 0.05 = 20 points
	c.SetDiscount(DiscountPoints, dec("1000"))
	assert.Equal(t, "1", c.DiscountAmount().String())
	assert.Equal(t, 20, c.PointsSpent())
}

func TestDiscount_PointsWithoutCustomerIsZero(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Chocolate", "7.00", "0"), 1)

	c.SetDiscount(DiscountPoints, dec("100"))
	assert.Equal(t, "0", c.DiscountAmount().String())
	assert.Equal(t, 0, c.PointsSpent())
}

func TestDiscount_RecomputedWhenCartChanges(t *testing.T) {
	c := New(dec("0.05"))
	p := product("Vinho", "40.00", "0")
	c.AddItem(p, 1)
	c.SetDiscount(DiscountPercentage, dec("25"))
	assert.Equal(t, "10", c.DiscountAmount().String())

	// Discount follows the cart, not the subtotal at set time
	c.AddItem(p, 1)
	assert.Equal(t, "20", c.DiscountAmount().String())
	assert.Equal(t, "60", c.Total().String())
}

func TestClear_ResetsEverything(t *testing.T) {
	c := New(dec("0.05"))
	c.AddItem(product("Sabão", "2.50", "0"), 4)
	c.SetCustomer(&Customer{ID: uuid.New(), Name: "Ana"})
	c.SetDiscount(DiscountFixed, dec("1.00"))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Customer())
	assert.Nil(t, c.Discount())
	assert.Equal(t, "0", c.Total().String())
}
