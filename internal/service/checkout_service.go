package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/cart"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/gateway"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/worker"
)

type CheckoutService interface {
	CompleteSale(ctx context.Context, operatorID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error)
	CancelSale(ctx context.Context, saleID uuid.UUID, reason string) (fault.Warnings, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type checkoutService struct {
	sales      repository.SaleRepository
	fiscalDocs repository.FiscalRepository
	products   repository.ProductRepository
	customers  repository.CustomerRepository
	cashier    CashierService
	cashierRepo repository.CashierRepository
	stock      gateway.StockGateway
	payments   gateway.PaymentGateway
	fiscal     gateway.FiscalGateway
	ledger     gateway.LedgerGateway
	dispatcher *worker.Dispatcher
	pointValue decimal.Decimal
}

func NewCheckoutService(
	sales repository.SaleRepository,
	fiscalDocs repository.FiscalRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	cashier CashierService,
	cashierRepo repository.CashierRepository,
	stock gateway.StockGateway,
	payments gateway.PaymentGateway,
	fiscal gateway.FiscalGateway,
	ledger gateway.LedgerGateway,
	dispatcher *worker.Dispatcher,
	pointValue decimal.Decimal,
) CheckoutService {
	return &checkoutService{
		sales:       sales,
		fiscalDocs:  fiscalDocs,
		products:    products,
		customers:   customers,
		cashier:     cashier,
		cashierRepo: cashierRepo,
		stock:       stock,
		payments:    payments,
		fiscal:      fiscal,
		ledger:      ledger,
		dispatcher:  dispatcher,
		pointValue:  pointValue,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Saga interpreter ──────────────────────────────────────────────────────────
// Each step is tagged fatal or best-effort. The interpreter halts on the
// first fatal failure; best-effort failures become warnings on the result.

type sagaStep struct {
	name  string
	fatal bool
	run   func(ctx context.Context) error
}

func runSaga(ctx context.Context, steps []sagaStep, warnings *fault.Warnings) error {
	for _, step := range steps {
		err := step.run(ctx)
		if err == nil {
			continue
		}
		if step.fatal {
			return err
		}
		log.Warn().Str("step", step.name).Err(err).Msg("best-effort saga step failed, continuing")
		warnings.Add(step.name, err)
	}
	return nil
}

// ── CompleteSale ──────────────────────────────────────────────────────────────
// Preconditions first (all fatal, no side effects), then the ordered steps:
//   1. stock check            fatal
//   2. non-cash capture       fatal
//   3. persist pending sale   fatal (captured tenders are refunded best-effort)
//   4. inventory decrement    best-effort
//   5. financial booking +
//      drawer cash leg        best-effort
//   6. fiscal issuance        best-effort, skipped for document type "none"
//   7. finalize as completed  fatal
//   8. loyalty accrual        best-effort

func (s *checkoutService) CompleteSale(ctx context.Context, operatorID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	// Preconditions — distinct, named failures; nothing has happened yet.
	if operatorID == uuid.Nil {
		return nil, fault.Validationf("operador não autenticado")
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fault.Validationf("session_id inválido")
	}
	session, err := s.cashier.FindOpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c, customer, err := s.buildCart(ctx, req)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, fault.Validationf("carrinho vazio")
	}

	tenders, err := buildTenders(req.Tenders, c)
	if err != nil {
		return nil, err
	}
	if !tenders.CanComplete(c) {
		return nil, fault.Validationf("pagamento insuficiente: alocado %s, total %s",
			tenders.Allocated().StringFixed(2), c.Total().StringFixed(2))
	}

	stockLines := toStockLines(c.Lines())

	var (
		warnings  fault.Warnings
		sale      model.Sale
		fiscalDoc *model.FiscalDocument
		captured  []capturedTender
	)
	// The sale id is assigned before any external call so payment captures
	// carry a reference the acquirer can correlate even when the record has
	// not been persisted yet.
	sale.ID = uuid.New()

	steps := []sagaStep{
		{name: "stock_check", fatal: true, run: func(ctx context.Context) error {
			shortages, err := s.stock.CheckAvailability(ctx, stockLines)
			if err != nil {
				return fault.Dependencyf("falha ao consultar estoque: %v", err)
			}
			if len(shortages) > 0 {
				f := fault.Validationf("estoque insuficiente")
				for _, sh := range shortages {
					f.WithEntities(fmt.Sprintf("%s (solicitado %d, disponível %d)", sh.Name, sh.Requested, sh.Available))
				}
				return f
			}
			return nil
		}},

		{name: "payment_capture", fatal: true, run: func(ctx context.Context) error {
			var err error
			captured, err = s.captureTenders(ctx, &sale, tenders)
			return err
		}},

		{name: "persist_sale", fatal: true, run: func(ctx context.Context) error {
			sale = buildSale(sale.ID, c, tenders, captured, session, operatorID, customer)
			err := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
				ticket, err := s.sales.NextTicketNumber(ctx, tx)
				if err != nil {
					return err
				}
				sale.TicketNumber = ticket
				return s.sales.Create(ctx, tx, &sale)
			})
			if err != nil {
				s.refundCaptured(ctx, captured)
				return fault.Dependencyf("falha ao gravar a venda: %v", err)
			}
			return nil
		}},

		{name: "inventory_decrement", fatal: false, run: func(ctx context.Context) error {
			return s.stock.Decrement(ctx, sale.ID, stockLines)
		}},

		{name: "financial_booking", fatal: false, run: func(ctx context.Context) error {
			return s.bookSale(ctx, &sale, session)
		}},

		{name: "fiscal_issuance", fatal: false, run: func(ctx context.Context) error {
			if req.FiscalDocumentType == "none" {
				return nil
			}
			var err error
			fiscalDoc, err = s.issueFiscal(ctx, &sale, c, req.FiscalDocumentType)
			return err
		}},

		{name: "finalize", fatal: true, run: func(ctx context.Context) error {
			now := time.Now()
			sale.Status = model.SaleCompleted
			sale.CompletedAt = &now
			return runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
				return s.sales.UpdateStatus(ctx, tx, &sale)
			})
		}},

		{name: "loyalty_accrual", fatal: false, run: func(ctx context.Context) error {
			return s.accrueLoyalty(ctx, c, customer)
		}},
	}

	if err := runSaga(ctx, steps, &warnings); err != nil {
		return nil, err
	}

	resp := saleToResponse(&sale)
	resp.Change = tenders.Change()
	resp.Warnings = warnings
	if fiscalDoc != nil {
		resp.Fiscal = fiscalToResponse(fiscalDoc)
	}
	return resp, nil
}

// buildCart resolves catalog products into a server-side cart so prices and
// tax rates are snapshotted from the source of truth, never trusted from the
// client.
func (s *checkoutService) buildCart(ctx context.Context, req dto.CheckoutRequest) (*cart.Cart, *model.Customer, error) {
	c := cart.New(s.pointValue)

	var customer *model.Customer
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, nil, fault.Validationf("customer_id inválido")
		}
		customer, err = s.customers.FindByID(ctx, cid)
		if err != nil {
			return nil, nil, fault.Validationf("cliente não encontrado")
		}
		c.SetCustomer(&cart.Customer{ID: customer.ID, Name: customer.Name, LoyaltyPoints: customer.LoyaltyPoints})
	}

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, nil, fault.Validationf("product_id inválido: %s", item.ProductID)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, nil, fault.Validationf("produto não encontrado").WithEntities(item.ProductID)
		}
		if !p.Active {
			return nil, nil, fault.Validationf("produto inativo não pode ser vendido").WithEntities(p.Name)
		}
		c.AddItem(cart.Product{
			ID:        p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			TaxRate:   p.TaxRate,
		}, item.Quantity)
		if item.Discount.IsPositive() {
			for _, line := range c.Lines() {
				if line.ProductID == p.ID {
					c.SetLineDiscount(line.ID, item.Discount)
				}
			}
		}
	}

	if req.Discount != nil {
		c.SetDiscount(cart.DiscountKind(req.Discount.Kind), req.Discount.Value)
	}
	return c, customer, nil
}

// buildTenders replays the requested allocation through the tender list so
// its invariants (one tender per method, single cash tender, change rules)
// apply to API input exactly as they do at the register.
func buildTenders(reqs []dto.TenderRequest, c *cart.Cart) (*cart.TenderList, error) {
	tl := cart.NewTenderList()
	var cashReceived *decimal.Decimal

	for i, t := range reqs {
		if i > 0 {
			tl.Add()
		}
		if err := tl.SetMethod(i, cart.Method(t.Method)); err != nil {
			return nil, err
		}
		if err := tl.SetAmount(i, t.Amount); err != nil {
			return nil, err
		}
		if cart.Method(t.Method) == cart.MethodCash {
			if t.CashReceived != nil {
				cashReceived = t.CashReceived
			} else {
				amount := t.Amount
				cashReceived = &amount
			}
		}
	}

	if cashReceived != nil {
		// Change is owed only on cash over the remainder not covered by the
		// other tenders.
		nonCash := decimal.Zero
		for _, tender := range tl.Tenders() {
			if tender.Method != cart.MethodCash {
				nonCash = nonCash.Add(tender.Amount)
			}
		}
		cashDue := c.Total().Sub(nonCash)
		if cashDue.IsNegative() {
			cashDue = decimal.Zero
		}
		if err := tl.SetCashReceived(*cashReceived, cashDue); err != nil {
			return nil, err
		}
	}
	return tl, nil
}

type capturedTender struct {
	method            cart.Method
	amount            decimal.Decimal
	transactionID     string
	authorizationCode string
}

// captureTenders authorizes every non-cash tender. A decline aborts the
// saga; stock was only checked so far, so no compensation is needed here.
func (s *checkoutService) captureTenders(ctx context.Context, sale *model.Sale, tenders *cart.TenderList) ([]capturedTender, error) {
	var captured []capturedTender
	for _, t := range tenders.Tenders() {
		if !t.Method.IsCaptured() || t.Amount.IsZero() {
			continue
		}
		result, err := s.payments.Capture(ctx, gateway.CaptureRequest{
			SaleID: sale.ID,
			Method: string(t.Method),
			Amount: t.Amount,
		})
		if err != nil {
			s.refundCaptured(ctx, captured)
			return nil, fault.Dependencyf("falha na captura do pagamento").WithEntities(string(t.Method))
		}
		if !result.Approved {
			s.refundCaptured(ctx, captured)
			return nil, fault.Dependencyf("pagamento recusado: %s", result.Message).WithEntities(string(t.Method))
		}
		captured = append(captured, capturedTender{
			method:            t.Method,
			amount:            t.Amount,
			transactionID:     result.TransactionID,
			authorizationCode: result.AuthorizationCode,
		})
	}
	return captured, nil
}

// refundCaptured best-effort reverses already-captured tenders when a later
// fatal step failed. A failed refund is logged loudly — it means money was
// taken with no sale record.
func (s *checkoutService) refundCaptured(ctx context.Context, captured []capturedTender) {
	for _, ct := range captured {
		if err := s.payments.Refund(ctx, ct.transactionID, ct.amount); err != nil {
			log.Error().
				Str("transaction_id", ct.transactionID).
				Str("method", string(ct.method)).
				Str("amount", ct.amount.StringFixed(2)).
				Err(err).
				Msg("refund of captured payment failed — manual reversal required")
		}
	}
}

func buildSale(id uuid.UUID, c *cart.Cart, tenders *cart.TenderList, captured []capturedTender, session *model.CashierSession, operatorID uuid.UUID, customer *model.Customer) model.Sale {
	sale := model.Sale{
		ID:             id,
		SessionID:      session.ID,
		OperatorID:     operatorID,
		Subtotal:       c.Subtotal(),
		DiscountAmount: c.DiscountAmount(),
		TaxAmount:      c.TaxAmount(),
		Total:          c.Total(),
		Status:         model.SalePending,
	}
	if customer != nil {
		sale.CustomerID = &customer.ID
	}

	for _, line := range c.Lines() {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID: line.ProductID,
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			Total:     line.Total(),
			TaxRate:   line.TaxRate,
			TaxAmount: line.TaxAmount(),
		})
	}

	auth := make(map[cart.Method]capturedTender, len(captured))
	for _, ct := range captured {
		auth[ct.method] = ct
	}
	for _, t := range tenders.Tenders() {
		record := model.SaleTender{
			Method: string(t.Method),
			Amount: t.Amount,
		}
		if ct, ok := auth[t.Method]; ok {
			txID, code := ct.transactionID, ct.authorizationCode
			record.TransactionID = &txID
			record.AuthorizationCode = &code
		}
		if t.Cash != nil {
			received, change := t.Cash.Received, t.Cash.Change
			record.CashReceived = &received
			record.CashChange = &change
		}
		sale.Tenders = append(sale.Tenders, record)
	}
	return sale
}

// bookSale registers income transactions with the financial ledger and
// drives the drawer's cash leg: the cash tender's allocated amount is
// appended to the session ledger as a "sale" entry.
func (s *checkoutService) bookSale(ctx context.Context, sale *model.Sale, session *model.CashierSession) error {
	bookings := make([]gateway.Booking, 0, len(sale.Tenders))
	for _, t := range sale.Tenders {
		bookings = append(bookings, gateway.Booking{
			SaleID:      sale.ID,
			Method:      t.Method,
			Amount:      t.Amount,
			Description: fmt.Sprintf("Venda #%d", sale.TicketNumber),
		})
	}
	bookErr := s.ledger.RegisterSale(ctx, bookings)

	for _, t := range sale.Tenders {
		if t.Method != string(cart.MethodCash) || !t.Amount.IsPositive() {
			continue
		}
		ref := sale.ID
		entry := &model.CashFlowEntry{
			SessionID:     session.ID,
			OperationType: model.FlowSale,
			Amount:        t.Amount,
			Note:          fmt.Sprintf("Venda #%d", sale.TicketNumber),
			ReferenceID:   &ref,
		}
		if err := s.cashierRepo.AppendEntry(ctx, nil, entry); err != nil {
			if bookErr != nil {
				return fmt.Errorf("ledger: %v; caixa: %w", bookErr, err)
			}
			return fmt.Errorf("caixa: %w", err)
		}
	}
	return bookErr
}

// issueFiscal creates the pending document record, then attempts issuance.
// On failure the document stays pending with a retry schedule — fiscal
// trouble never blocks the sale.
func (s *checkoutService) issueFiscal(ctx context.Context, sale *model.Sale, c *cart.Cart, docType string) (*model.FiscalDocument, error) {
	doc := &model.FiscalDocument{
		SaleID: sale.ID,
		Type:   docType,
		Total:  sale.Total,
		Status: model.FiscalPending,
	}
	if err := s.fiscalDocs.Create(ctx, nil, doc); err != nil {
		return nil, fmt.Errorf("registro do documento fiscal: %w", err)
	}

	issueReq := gateway.IssueRequest{
		SaleID:       sale.ID,
		DocumentType: docType,
		Total:        sale.Total,
		TaxAmount:    sale.TaxAmount,
	}
	for _, line := range c.Lines() {
		issueReq.Items = append(issueReq.Items, gateway.IssueItem{
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	issued, err := s.fiscal.Issue(ctx, issueReq)
	if err != nil {
		retryAt := time.Now().Add(time.Minute)
		msg := err.Error()
		doc.NextRetryAt = &retryAt
		doc.LastError = &msg
		_ = s.fiscalDocs.Update(ctx, doc)
		if s.dispatcher != nil {
			_ = s.dispatcher.EnqueueFiscalRetry(ctx, worker.FiscalRetryPayload{DocumentID: doc.ID.String()})
		}
		return doc, fmt.Errorf("emissão fiscal falhou, documento ficará pendente: %w", err)
	}

	doc.Status = model.FiscalIssued
	doc.ExternalID = &issued.ExternalID
	doc.Number = &issued.Number
	doc.AccessKey = &issued.AccessKey
	if err := s.fiscalDocs.Update(ctx, doc); err != nil {
		return doc, fmt.Errorf("gravação do documento fiscal: %w", err)
	}
	return doc, nil
}

// accrueLoyalty awards floor(total/10) points and deducts the points spent
// on a points discount, in one signed adjustment.
func (s *checkoutService) accrueLoyalty(ctx context.Context, c *cart.Cart, customer *model.Customer) error {
	if customer == nil {
		return nil
	}
	earned := int(c.Total().Div(decimal.NewFromInt(10)).IntPart())
	delta := earned - c.PointsSpent()
	if delta == 0 {
		return nil
	}
	return s.customers.AdjustPoints(ctx, customer.ID, delta)
}

// ── CancelSale ────────────────────────────────────────────────────────────────
// Only completed sales may be cancelled. Every compensation is best-effort;
// the status flip is the only fatal step, so the sale is marked cancelled
// even when compensations partially fail.

func (s *checkoutService) CancelSale(ctx context.Context, saleID uuid.UUID, reason string) (fault.Warnings, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, fault.Validationf("venda não encontrada")
	}
	switch sale.Status {
	case model.SaleCancelled:
		return nil, fault.Statef("a venda já está cancelada")
	case model.SalePending:
		return nil, fault.Statef("venda pendente não pode ser cancelada")
	}

	stockLines := make([]gateway.StockLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		stockLines = append(stockLines, gateway.StockLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
		})
	}

	var warnings fault.Warnings
	steps := []sagaStep{
		{name: "fiscal_cancellation", fatal: false, run: func(ctx context.Context) error {
			if sale.FiscalDocument == nil || sale.FiscalDocument.ExternalID == nil {
				return nil
			}
			if err := s.fiscal.Cancel(ctx, *sale.FiscalDocument.ExternalID, reason); err != nil {
				return err
			}
			sale.FiscalDocument.Status = model.FiscalCancelled
			return s.fiscalDocs.Update(ctx, sale.FiscalDocument)
		}},

		{name: "restock", fatal: false, run: func(ctx context.Context) error {
			return s.stock.Restock(ctx, sale.ID, stockLines)
		}},

		{name: "financial_reversal", fatal: false, run: func(ctx context.Context) error {
			bookings := make([]gateway.Booking, 0, len(sale.Tenders))
			for _, t := range sale.Tenders {
				bookings = append(bookings, gateway.Booking{
					SaleID:      sale.ID,
					Method:      t.Method,
					Amount:      t.Amount,
					Description: fmt.Sprintf("Cancelamento venda #%d — %s", sale.TicketNumber, reason),
				})
			}
			return s.ledger.RegisterCancellation(ctx, bookings)
		}},

		{name: "cash_refund", fatal: false, run: func(ctx context.Context) error {
			for _, t := range sale.Tenders {
				if t.Method != string(cart.MethodCash) || !t.Amount.IsPositive() {
					continue
				}
				ref := sale.ID
				entry := &model.CashFlowEntry{
					SessionID:     sale.SessionID,
					OperationType: model.FlowRefund,
					Amount:        t.Amount,
					Note:          fmt.Sprintf("Cancelamento venda #%d — %s", sale.TicketNumber, reason),
					ReferenceID:   &ref,
				}
				if err := s.cashierRepo.AppendEntry(ctx, nil, entry); err != nil {
					return err
				}
			}
			return nil
		}},

		{name: "mark_cancelled", fatal: true, run: func(ctx context.Context) error {
			now := time.Now()
			sale.Status = model.SaleCancelled
			sale.CancelledAt = &now
			note := fmt.Sprintf("Cancelada: %s", reason)
			if sale.Notes != nil && *sale.Notes != "" {
				note = *sale.Notes + "\n" + note
			}
			sale.Notes = &note
			return runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
				return s.sales.UpdateStatus(ctx, tx, sale)
			})
		}},
	}

	if err := runSaga(ctx, steps, &warnings); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *checkoutService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, fault.Validationf("venda não encontrada")
	}
	return saleToResponse(sale), nil
}

// ListSales returns a paginated list filtered by date and status.
// Default filter: today's completed sales.
func (s *checkoutService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = model.SaleCompleted
	}
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func toStockLines(lines []cart.Line) []gateway.StockLine {
	out := make([]gateway.StockLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, gateway.StockLine{ProductID: l.ProductID, Name: l.Name, Quantity: l.Quantity})
	}
	return out
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			Product:   item.Name,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	tenders := make([]dto.SaleTenderResponse, 0, len(s.Tenders))
	change := decimal.Zero
	for _, t := range s.Tenders {
		tenders = append(tenders, dto.SaleTenderResponse{
			Method:       t.Method,
			Amount:       t.Amount,
			CashReceived: t.CashReceived,
			CashChange:   t.CashChange,
		})
		if t.CashChange != nil {
			change = change.Add(*t.CashChange)
		}
	}
	resp := &dto.SaleResponse{
		ID:             s.ID.String(),
		TicketNumber:   s.TicketNumber,
		SessionID:      s.SessionID.String(),
		Items:          items,
		Subtotal:       s.Subtotal,
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		Total:          s.Total,
		Tenders:        tenders,
		Change:         change,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
	}
	if s.FiscalDocument != nil {
		resp.Fiscal = fiscalToResponse(s.FiscalDocument)
	}
	return resp
}

func fiscalToResponse(d *model.FiscalDocument) *dto.FiscalDocumentResponse {
	return &dto.FiscalDocumentResponse{
		ID:        d.ID.String(),
		Type:      d.Type,
		Number:    d.Number,
		AccessKey: d.AccessKey,
		Status:    d.Status,
	}
}
