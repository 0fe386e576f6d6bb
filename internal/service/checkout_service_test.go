package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/gateway"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/service"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	ticketSeq  int
	failCreate bool
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if r.failCreate {
		return errors.New("disk full")
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	stored, ok := r.sales[s.ID]
	if !ok {
		return errors.New("not found")
	}
	stored.Status = s.Status
	stored.Notes = s.Notes
	stored.CompletedAt = s.CompletedAt
	stored.CancelledAt = s.CancelledAt
	return nil
}

func (r *stubSaleRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.ticketSeq++
	return r.ticketSeq, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubFiscalRepo struct {
	docs map[uuid.UUID]*model.FiscalDocument
}

func newStubFiscalRepo() *stubFiscalRepo {
	return &stubFiscalRepo{docs: make(map[uuid.UUID]*model.FiscalDocument)}
}

func (r *stubFiscalRepo) Create(_ context.Context, _ *gorm.DB, d *model.FiscalDocument) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = model.FiscalPending
	}
	r.docs[d.ID] = d
	return nil
}

func (r *stubFiscalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.FiscalDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func (r *stubFiscalRepo) FindBySaleID(_ context.Context, saleID uuid.UUID) (*model.FiscalDocument, error) {
	for _, d := range r.docs {
		if d.SaleID == saleID {
			return d, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubFiscalRepo) Update(_ context.Context, d *model.FiscalDocument) error {
	r.docs[d.ID] = d
	return nil
}

func (r *stubFiscalRepo) FindPendingRetries(_ context.Context, _ time.Time, _ int) ([]model.FiscalDocument, error) {
	return nil, nil
}

var _ repository.FiscalRepository = (*stubFiscalRepo)(nil)

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) CreateMovementTx(_ *gorm.DB, _ *model.StockMovement) error { return nil }

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) AdjustPoints(_ context.Context, id uuid.UUID, delta int) error {
	c, ok := r.customers[id]
	if !ok {
		return errors.New("not found")
	}
	c.LoyaltyPoints += delta
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// fakePayment approves every capture unless decline is set; records refunds.
type fakePayment struct {
	decline  bool
	captures []gateway.CaptureRequest
	refunds  []string
}

func (p *fakePayment) Capture(_ context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	if p.decline {
		return &gateway.CaptureResult{Approved: false, Message: "cartão recusado"}, nil
	}
	p.captures = append(p.captures, req)
	return &gateway.CaptureResult{
		Approved:          true,
		TransactionID:     "tx-" + uuid.NewString()[:8],
		AuthorizationCode: "auth-123",
	}, nil
}

func (p *fakePayment) Refund(_ context.Context, transactionID string, _ decimal.Decimal) error {
	p.refunds = append(p.refunds, transactionID)
	return nil
}

var _ gateway.PaymentGateway = (*fakePayment)(nil)

// fakeFiscal issues documents unless fail is set.
type fakeFiscal struct {
	fail      bool
	issued    int
	cancelled []string
}

func (f *fakeFiscal) Issue(_ context.Context, _ gateway.IssueRequest) (*gateway.IssuedDocument, error) {
	if f.fail {
		return nil, errors.New("sidecar timeout")
	}
	f.issued++
	return &gateway.IssuedDocument{
		ExternalID: "ext-001",
		Number:     int64(f.issued),
		AccessKey:  "35260899999999000191650010000000011000000011",
		Status:     "authorized",
	}, nil
}

func (f *fakeFiscal) Cancel(_ context.Context, externalID, _ string) error {
	f.cancelled = append(f.cancelled, externalID)
	return nil
}

var _ gateway.FiscalGateway = (*fakeFiscal)(nil)

// fakeLedger records bookings; fails when broken.
type fakeLedger struct {
	broken        bool
	sales         [][]gateway.Booking
	cancellations [][]gateway.Booking
}

func (l *fakeLedger) RegisterSale(_ context.Context, b []gateway.Booking) error {
	if l.broken {
		return errors.New("ledger unavailable")
	}
	l.sales = append(l.sales, b)
	return nil
}

func (l *fakeLedger) RegisterCancellation(_ context.Context, b []gateway.Booking) error {
	if l.broken {
		return errors.New("ledger unavailable")
	}
	l.cancellations = append(l.cancellations, b)
	return nil
}

var _ gateway.LedgerGateway = (*fakeLedger)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type checkoutFixture struct {
	svc        service.CheckoutService
	sales      *stubSaleRepo
	fiscalDocs *stubFiscalRepo
	products   *stubProductRepo
	customers  *stubCustomerRepo
	cashier    *stubCashierRepo
	payment    *fakePayment
	fiscal     *fakeFiscal
	ledger     *fakeLedger
	operator   uuid.UUID
	sessionID  uuid.UUID
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		sales:      newStubSaleRepo(),
		fiscalDocs: newStubFiscalRepo(),
		products:   newStubProductRepo(),
		customers:  newStubCustomerRepo(),
		cashier:    newStubCashierRepo(),
		payment:    &fakePayment{},
		fiscal:     &fakeFiscal{},
		ledger:     &fakeLedger{},
		operator:   uuid.New(),
	}
	cashierSvc := service.NewCashierService(f.cashier)
	f.sessionID = openSession(t, cashierSvc, f.operator, "100.00")

	f.svc = service.NewCheckoutService(
		f.sales, f.fiscalDocs, f.products, f.customers,
		cashierSvc, f.cashier,
		gateway.NewRepoStock(f.products), f.payment, f.fiscal, f.ledger,
		nil, dec("0.05"),
	)
	return f
}

func (f *checkoutFixture) seedProduct(name, price string, stock int) *model.Product {
	p := &model.Product{
		ID:            uuid.New(),
		SKU:           "SKU-" + name,
		Name:          name,
		UnitPrice:     dec(price),
		TaxRate:       decimal.Zero,
		StockQuantity: stock,
		Active:        true,
	}
	f.products.products[p.ID] = p
	return p
}

func (f *checkoutFixture) checkoutReq(p *model.Product, qty int, tenders ...dto.TenderRequest) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		SessionID:          f.sessionID.String(),
		Items:              []dto.CheckoutItemRequest{{ProductID: p.ID.String(), Quantity: qty}},
		Tenders:            tenders,
		FiscalDocumentType: "nfce",
	}
}

func cashTender(amount, received string) dto.TenderRequest {
	r := dec(received)
	return dto.TenderRequest{Method: "cash", Amount: dec(amount), CashReceived: &r}
}

// ── CompleteSale ──────────────────────────────────────────────────────────────

func TestCompleteSale_CashHappyPath(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Café 500g", "25.00", 10)

	resp, err := f.svc.CompleteSale(context.Background(), f.operator, f.checkoutReq(p, 2, cashTender("50.00", "60.00")))
	require.NoError(t, err)

	assert.Equal(t, model.SaleCompleted, resp.Status)
	assert.Equal(t, 1, resp.TicketNumber)
	assert.Equal(t, "50", resp.Total.String())
	assert.Equal(t, "10", resp.Change.String())
	assert.Empty(t, resp.Warnings)

	// Stock decremented, drawer credited with the allocated cash (not the change)
	assert.Equal(t, 8, f.products.products[p.ID].StockQuantity)
	assert.Equal(t, "150", f.cashier.sessions[f.sessionID].CurrentAmount.String())

	// Fiscal document issued
	doc, err := f.fiscalDocs.FindBySaleID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.FiscalIssued, doc.Status)
	require.NotNil(t, resp.Fiscal)
	assert.Equal(t, model.FiscalIssued, resp.Fiscal.Status)

	// Ledger booked one income per tender
	require.Len(t, f.ledger.sales, 1)
}

func TestCompleteSale_CardCaptured(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Vinho", "80.00", 5)

	resp, err := f.svc.CompleteSale(context.Background(), f.operator,
		f.checkoutReq(p, 1, dto.TenderRequest{Method: "credit", Amount: dec("80.00")}))
	require.NoError(t, err)

	require.Len(t, f.payment.captures, 1)
	assert.Equal(t, "credit", f.payment.captures[0].Method)

	// The capture request references the sale even though it is captured
	// before the record is persisted
	assert.NotEqual(t, uuid.Nil, f.payment.captures[0].SaleID)
	assert.Equal(t, resp.ID, f.payment.captures[0].SaleID.String())

	// Authorization persisted on the tender snapshot
	sale := f.sales.sales[uuid.MustParse(resp.ID)]
	require.Len(t, sale.Tenders, 1)
	require.NotNil(t, sale.Tenders[0].TransactionID)
	assert.NotEmpty(t, *sale.Tenders[0].TransactionID)

	// No cash leg: drawer balance unchanged
	assert.Equal(t, "100", f.cashier.sessions[f.sessionID].CurrentAmount.String())
}

func TestCompleteSale_NoOpenSession(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Leite", "5.00", 10)

	req := f.checkoutReq(p, 1, cashTender("5.00", "5.00"))
	req.SessionID = uuid.New().String()

	_, err := f.svc.CompleteSale(context.Background(), f.operator, req)
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
	assert.Empty(t, f.sales.sales)
}

func TestCompleteSale_InsufficientTender(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Queijo", "30.00", 10)

	_, err := f.svc.CompleteSale(context.Background(), f.operator, f.checkoutReq(p, 1, cashTender("20.00", "20.00")))
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
	assert.Contains(t, err.Error(), "pagamento insuficiente")
}

func TestCompleteSale_StockShortageNamesProducts(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Cerveja lata", "4.50", 2)

	_, err := f.svc.CompleteSale(context.Background(), f.operator, f.checkoutReq(p, 6, cashTender("27.00", "27.00")))
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
	assert.Contains(t, err.Error(), "Cerveja lata")
	assert.Contains(t, err.Error(), "disponível 2")

	// Nothing happened: no capture, no sale, stock untouched
	assert.Empty(t, f.payment.captures)
	assert.Empty(t, f.sales.sales)
	assert.Equal(t, 2, f.products.products[p.ID].StockQuantity)
}

func TestCompleteSale_PaymentDeclinedAbortsSaga(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payment.decline = true
	p := f.seedProduct("TV 42", "1500.00", 3)

	_, err := f.svc.CompleteSale(context.Background(), f.operator,
		f.checkoutReq(p, 1, dto.TenderRequest{Method: "credit", Amount: dec("1500.00")}))
	require.Error(t, err)
	assert.Equal(t, fault.Dependency, fault.KindOf(err))
	assert.Contains(t, err.Error(), "recusado")

	// No sale persisted, stock untouched, drawer untouched
	assert.Empty(t, f.sales.sales)
	assert.Equal(t, 3, f.products.products[p.ID].StockQuantity)
	assert.Equal(t, "100", f.cashier.sessions[f.sessionID].CurrentAmount.String())
}

func TestCompleteSale_PersistFailureRefundsCaptured(t *testing.T) {
	f := newCheckoutFixture(t)
	f.sales.failCreate = true
	p := f.seedProduct("Notebook", "3000.00", 2)

	_, err := f.svc.CompleteSale(context.Background(), f.operator,
		f.checkoutReq(p, 1, dto.TenderRequest{Method: "debit", Amount: dec("3000.00")}))
	require.Error(t, err)
	assert.Equal(t, fault.Dependency, fault.KindOf(err))

	// The captured debit tender was reversed
	require.Len(t, f.payment.captures, 1)
	assert.Len(t, f.payment.refunds, 1)
}

func TestCompleteSale_LedgerDownYieldsWarningNotFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.ledger.broken = true
	p := f.seedProduct("Arroz 5kg", "22.00", 10)

	resp, err := f.svc.CompleteSale(context.Background(), f.operator, f.checkoutReq(p, 1, cashTender("22.00", "22.00")))
	require.NoError(t, err)

	assert.Equal(t, model.SaleCompleted, resp.Status)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "financial_booking", resp.Warnings[0].Step)

	// Best-effort step failed but the rest of the saga ran
	assert.Equal(t, 9, f.products.products[p.ID].StockQuantity)
}

func TestCompleteSale_FiscalDownDocumentStaysPending(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fiscal.fail = true
	p := f.seedProduct("Feijão", "8.00", 10)

	resp, err := f.svc.CompleteSale(context.Background(), f.operator, f.checkoutReq(p, 1, cashTender("8.00", "8.00")))
	require.NoError(t, err)

	assert.Equal(t, model.SaleCompleted, resp.Status)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "fiscal_issuance", resp.Warnings[0].Step)

	doc, err := f.fiscalDocs.FindBySaleID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.FiscalPending, doc.Status)
	assert.NotNil(t, doc.NextRetryAt)
	assert.NotNil(t, doc.LastError)
}

func TestCompleteSale_SkipsFiscalWhenTypeNone(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Pão", "0.80", 50)

	req := f.checkoutReq(p, 5, cashTender("4.00", "4.00"))
	req.FiscalDocumentType = "none"

	resp, err := f.svc.CompleteSale(context.Background(), f.operator, req)
	require.NoError(t, err)
	assert.Nil(t, resp.Fiscal)
	assert.Equal(t, 0, f.fiscal.issued)
}

func TestCompleteSale_LoyaltyAccrualAndPointsDiscount(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Picanha", "100.00", 10)

	customer := &model.Customer{ID: uuid.New(), Name: "Maria", LoyaltyPoints: 200, Active: true}
	f.customers.customers[customer.ID] = customer

	// 200 points × 0.05 = 10.00 discount; total = 90.00
	cid := customer.ID.String()
	req := f.checkoutReq(p, 1, cashTender("90.00", "90.00"))
	req.CustomerID = &cid
	req.Discount = &dto.DiscountRequest{Kind: "points", Value: dec("200")}

	resp, err := f.svc.CompleteSale(context.Background(), f.operator, req)
	require.NoError(t, err)
	assert.Equal(t, "90", resp.Total.String())
	assert.Equal(t, "10", resp.DiscountAmount.String())

	// floor(90/10) = 9 earned, 200 spent: 200 - 9 = 191 net deduction
	assert.Equal(t, 9, customer.LoyaltyPoints)
}

func TestCompleteSale_SplitTender(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Churrasco kit", "100.00", 10)

	resp, err := f.svc.CompleteSale(context.Background(), f.operator,
		f.checkoutReq(p, 1,
			cashTender("40.00", "50.00"),
			dto.TenderRequest{Method: "debit", Amount: dec("60.00")},
		))
	require.NoError(t, err)

	assert.Equal(t, "10", resp.Change.String())
	require.Len(t, f.payment.captures, 1) // only the debit leg captured

	// Drawer gains only the allocated cash leg
	assert.Equal(t, "140", f.cashier.sessions[f.sessionID].CurrentAmount.String())
}

// ── CancelSale ────────────────────────────────────────────────────────────────

func completeCashSale(t *testing.T, f *checkoutFixture, p *model.Product, qty int, amount string) uuid.UUID {
	t.Helper()
	resp, err := f.svc.CompleteSale(context.Background(), f.operator, f.checkoutReq(p, qty, cashTender(amount, amount)))
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func TestCancelSale_FullCompensation(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Whisky", "180.00", 10)
	saleID := completeCashSale(t, f, p, 1, "180.00")
	require.Equal(t, 9, f.products.products[p.ID].StockQuantity)

	// Wire the issued document into the preloaded sale, as FindByID would
	doc, err := f.fiscalDocs.FindBySaleID(context.Background(), saleID)
	require.NoError(t, err)
	f.sales.sales[saleID].FiscalDocument = doc

	warnings, err := f.svc.CancelSale(context.Background(), saleID, "preço incorreto")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// Status flipped, stock restored, fiscal cancelled, ledger reversed
	assert.Equal(t, model.SaleCancelled, f.sales.sales[saleID].Status)
	assert.Equal(t, 10, f.products.products[p.ID].StockQuantity)
	assert.Equal(t, []string{"ext-001"}, f.fiscal.cancelled)
	assert.Equal(t, model.FiscalCancelled, doc.Status)
	require.Len(t, f.ledger.cancellations, 1)

	// Drawer refunded the cash leg: 100 + 180 - 180 = 100
	assert.Equal(t, "100", f.cashier.sessions[f.sessionID].CurrentAmount.String())
}

func TestCancelSale_AlreadyCancelledIsStateFault(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Vodka", "60.00", 10)
	saleID := completeCashSale(t, f, p, 1, "60.00")

	_, err := f.svc.CancelSale(context.Background(), saleID, "motivo qualquer")
	require.NoError(t, err)

	_, err = f.svc.CancelSale(context.Background(), saleID, "de novo")
	require.Error(t, err)
	assert.Equal(t, fault.State, fault.KindOf(err))
	assert.Contains(t, err.Error(), "já está cancelada")
}

func TestCancelSale_PendingSaleIsStateFault(t *testing.T) {
	f := newCheckoutFixture(t)
	sale := &model.Sale{ID: uuid.New(), SessionID: f.sessionID, Status: model.SalePending}
	f.sales.sales[sale.ID] = sale

	_, err := f.svc.CancelSale(context.Background(), sale.ID, "abandono")
	require.Error(t, err)
	assert.Equal(t, fault.State, fault.KindOf(err))
	assert.Equal(t, model.SalePending, sale.Status)
}

func TestCancelSale_UnknownSale(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.CancelSale(context.Background(), uuid.New(), "não existe")
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestCancelSale_LedgerDownStillCancelsWithWarnings(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Cachaça", "25.00", 10)
	saleID := completeCashSale(t, f, p, 1, "25.00")

	f.ledger.broken = true
	warnings, err := f.svc.CancelSale(context.Background(), saleID, "cliente desistiu")
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "financial_reversal", warnings[0].Step)
	assert.Equal(t, model.SaleCancelled, f.sales.sales[saleID].Status)
	// Stock still restored despite the ledger being down
	assert.Equal(t, 10, f.products.products[p.ID].StockQuantity)
}

// ── Queries ───────────────────────────────────────────────────────────────────

func TestGetSale_NotFound(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.GetSale(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestListSales_DefaultsApplied(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.seedProduct("Suco", "7.00", 20)
	completeCashSale(t, f, p, 1, "7.00")

	resp, err := f.svc.ListSales(context.Background(), dto.SaleFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
}
