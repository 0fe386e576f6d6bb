package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
)

// Method is a payment method tag.
type Method string

const (
	MethodCash    Method = "cash"
	MethodCredit  Method = "credit"
	MethodDebit   Method = "debit"
	MethodPix     Method = "pix"
	MethodVoucher Method = "voucher"
	MethodOther   Method = "other"
)

// IsCaptured reports whether the method requires an authorization call to
// the payment gateway before the sale may complete.
func (m Method) IsCaptured() bool {
	switch m {
	case MethodCash, MethodOther:
		return false
	}
	return true
}

// CashDetails exist only on a cash tender — change on a card tender is
// unrepresentable by construction.
type CashDetails struct {
	Received decimal.Decimal
	Change   decimal.Decimal
}

// Tender is one payment applied toward the sale total. Cash is nil unless
// Method == MethodCash.
type Tender struct {
	Method Method
	Amount decimal.Decimal
	Cash   *CashDetails
}

// methodOrder is the preference used when Add picks a free method.
var methodOrder = []Method{MethodCash, MethodDebit, MethodCredit, MethodPix, MethodVoucher, MethodOther}

// TenderList allocates payment across methods. It always holds at least one
// tender and at most one tender per method.
type TenderList struct {
	tenders []Tender
}

// NewTenderList starts with a single zero-amount cash tender, the common
// case at the register.
func NewTenderList() *TenderList {
	return &TenderList{tenders: []Tender{{Method: MethodCash, Amount: decimal.Zero, Cash: &CashDetails{}}}}
}

// Tenders returns a copy of the current allocation.
func (t *TenderList) Tenders() []Tender {
	out := make([]Tender, len(t.tenders))
	copy(out, t.tenders)
	return out
}

// Add appends a tender using the first method not already in use.
// When every method is taken the list is unchanged.
func (t *TenderList) Add() {
	for _, m := range methodOrder {
		if t.indexOf(m) < 0 {
			tender := Tender{Method: m, Amount: decimal.Zero}
			if m == MethodCash {
				tender.Cash = &CashDetails{}
			}
			t.tenders = append(t.tenders, tender)
			return
		}
	}
}

// Remove drops the tender at index. Removing the last remaining tender is a
// no-op — the list is never empty.
func (t *TenderList) Remove(index int) {
	if len(t.tenders) <= 1 || index < 0 || index >= len(t.tenders) {
		return
	}
	t.tenders = append(t.tenders[:index], t.tenders[index+1:]...)
}

// SetMethod changes the method of the tender at index. Fails when the
// method is already used by another tender.
func (t *TenderList) SetMethod(index int, m Method) error {
	if index < 0 || index >= len(t.tenders) {
		return fault.Validationf("índice de pagamento inválido: %d", index)
	}
	if other := t.indexOf(m); other >= 0 && other != index {
		return fault.Validationf("já existe um pagamento com o método %s", m)
	}
	t.tenders[index].Method = m
	if m == MethodCash {
		if t.tenders[index].Cash == nil {
			t.tenders[index].Cash = &CashDetails{}
		}
	} else {
		t.tenders[index].Cash = nil
	}
	return nil
}

// SetAmount changes the allocated amount of the tender at index.
func (t *TenderList) SetAmount(index int, amount decimal.Decimal) error {
	if index < 0 || index >= len(t.tenders) {
		return fault.Validationf("índice de pagamento inválido: %d", index)
	}
	if amount.IsNegative() {
		return fault.Validationf("valor de pagamento não pode ser negativo")
	}
	t.tenders[index].Amount = amount
	return nil
}

// SetCashReceived records the physical cash handed over against the sale
// total. The cash tender's allocation becomes min(received, total); when the
// customer over-pays, the surplus is recorded as change. A cash tender is
// created when none exists.
func (t *TenderList) SetCashReceived(received, total decimal.Decimal) error {
	if received.IsNegative() {
		return fault.Validationf("valor recebido não pode ser negativo")
	}
	i := t.indexOf(MethodCash)
	if i < 0 {
		t.tenders = append(t.tenders, Tender{Method: MethodCash, Cash: &CashDetails{}})
		i = len(t.tenders) - 1
	}
	allocated := received
	change := decimal.Zero
	if received.GreaterThan(total) {
		allocated = total
		change = received.Sub(total)
	}
	t.tenders[i].Amount = allocated
	t.tenders[i].Cash = &CashDetails{Received: received, Change: change}
	return nil
}

// Allocated is the sum of every tender's allocated amount.
func (t *TenderList) Allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, tender := range t.tenders {
		sum = sum.Add(tender.Amount)
	}
	return sum
}

// Change returns the cash change due, zero when there is no cash tender.
func (t *TenderList) Change() decimal.Decimal {
	if i := t.indexOf(MethodCash); i >= 0 && t.tenders[i].Cash != nil {
		return t.tenders[i].Cash.Change
	}
	return decimal.Zero
}

// CashTender returns the cash tender, or nil when payment is card-only.
func (t *TenderList) CashTender() *Tender {
	if i := t.indexOf(MethodCash); i >= 0 {
		tender := t.tenders[i]
		return &tender
	}
	return nil
}

// CanComplete reports whether checkout may proceed: the cart has items and
// the allocation covers the total.
func (t *TenderList) CanComplete(c *Cart) bool {
	return !c.IsEmpty() && t.Allocated().GreaterThanOrEqual(c.Total())
}

func (t *TenderList) indexOf(m Method) int {
	for i := range t.tenders {
		if t.tenders[i].Method == m {
			return i
		}
	}
	return -1
}
