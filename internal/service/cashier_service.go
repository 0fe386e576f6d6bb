package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
)

type CashierService interface {
	Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Withdraw(ctx context.Context, req dto.CashMovementRequest) error
	Deposit(ctx context.Context, req dto.CashMovementRequest) error
	Close(ctx context.Context, req dto.CloseSessionRequest) (*dto.CloseSessionResponse, error)
	Summary(ctx context.Context, sessionID uuid.UUID) (*dto.SessionSummaryResponse, error)
	Active(ctx context.Context, operatorID uuid.UUID) (*dto.SessionResponse, error)
	History(ctx context.Context, page, limit int) ([]dto.SessionResponse, int64, error)
	// FindOpenSession is called by the checkout saga to validate its
	// open-session precondition.
	FindOpenSession(ctx context.Context, sessionID uuid.UUID) (*model.CashierSession, error)
}

type cashierService struct {
	repo repository.CashierRepository
}

func NewCashierService(repo repository.CashierRepository) CashierService {
	return &cashierService{repo: repo}
}

// ── Open ──────────────────────────────────────────────────────────────────────
// One open session per operator, enforced by lookup. Opening never reopens a
// closed session — it always creates a fresh one.

func (s *cashierService) Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	existing, err := s.repo.FindOpenByOperator(ctx, operatorID)
	switch {
	case err == nil && existing != nil:
		return nil, fault.Validationf("já existe uma sessão de caixa aberta para este operador")
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		// A lookup failure must not let a second session slip through.
		return nil, fmt.Errorf("consulta de sessão aberta: %w", err)
	}

	session := &model.CashierSession{
		OperatorID:    operatorID,
		Terminal:      req.Terminal,
		InitialAmount: req.InitialAmount,
		CurrentAmount: req.InitialAmount,
		Status:        model.SessionOpen,
		OpenedAt:      time.Now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	entry := &model.CashFlowEntry{
		SessionID:     session.ID,
		OperationType: model.FlowInitialBalance,
		Amount:        req.InitialAmount,
		Note:          "Abertura de caixa",
	}
	if err := s.repo.AppendEntry(ctx, nil, entry); err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

// ── Withdraw / Deposit ────────────────────────────────────────────────────────
// Manual drawer movements. Entries are immutable; the cached current_amount
// is adjusted by the same append.

func (s *cashierService) Withdraw(ctx context.Context, req dto.CashMovementRequest) error {
	session, err := s.openSessionFromRequest(ctx, req.SessionID)
	if err != nil {
		return err
	}
	if req.Amount.GreaterThan(session.CurrentAmount) {
		return fault.Statef("saldo insuficiente: sangria de %s excede o saldo atual de %s",
			req.Amount.StringFixed(2), session.CurrentAmount.StringFixed(2))
	}
	return s.repo.AppendEntry(ctx, nil, &model.CashFlowEntry{
		SessionID:     session.ID,
		OperationType: model.FlowWithdraw,
		Amount:        req.Amount,
		Note:          req.Reason,
	})
}

func (s *cashierService) Deposit(ctx context.Context, req dto.CashMovementRequest) error {
	session, err := s.openSessionFromRequest(ctx, req.SessionID)
	if err != nil {
		return err
	}
	return s.repo.AppendEntry(ctx, nil, &model.CashFlowEntry{
		SessionID:     session.ID,
		OperationType: model.FlowDeposit,
		Amount:        req.Amount,
		Note:          req.Reason,
	})
}

// ── Close ─────────────────────────────────────────────────────────────────────
// The discrepancy (counted − expected) is reported but never blocks closing:
// reconciliation is advisory. Expected cash is derived purely from the
// ledger, not from the cached counter.

func (s *cashierService) Close(ctx context.Context, req dto.CloseSessionRequest) (*dto.CloseSessionResponse, error) {
	session, err := s.openSessionFromRequest(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEntries(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	expected := repository.ReplayBalance(session.InitialAmount, entries)
	discrepancy := req.CountedAmount.Sub(expected)

	if !discrepancy.IsZero() {
		log.Warn().
			Str("session_id", session.ID.String()).
			Str("expected", expected.StringFixed(2)).
			Str("counted", req.CountedAmount.StringFixed(2)).
			Str("discrepancy", discrepancy.StringFixed(2)).
			Msg("drawer closed with discrepancy")
	}

	if err := s.repo.AppendEntry(ctx, nil, &model.CashFlowEntry{
		SessionID:     session.ID,
		OperationType: model.FlowFinalBalance,
		Amount:        req.CountedAmount,
		Note:          "Fechamento de caixa",
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	session.Status = model.SessionClosed
	session.FinalAmount = &req.CountedAmount
	session.Discrepancy = &discrepancy
	session.Notes = req.Notes
	session.ClosedAt = &now
	if err := s.repo.UpdateSession(ctx, nil, session); err != nil {
		return nil, err
	}

	return &dto.CloseSessionResponse{
		SessionID:      session.ID.String(),
		ExpectedAmount: expected,
		CountedAmount:  req.CountedAmount,
		Discrepancy:    discrepancy,
		Status:         model.SessionClosed,
	}, nil
}

// ── Summary ───────────────────────────────────────────────────────────────────
// Derived entirely by replaying the ledger. The cached current_amount is
// checked against the replay and drift is logged — the ledger wins.

func (s *cashierService) Summary(ctx context.Context, sessionID uuid.UUID) (*dto.SessionSummaryResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fault.Validationf("sessão de caixa não encontrada")
	}
	entries, err := s.repo.ListEntries(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sums := map[string]decimal.Decimal{}
	for _, e := range entries {
		sums[e.OperationType] = sums[e.OperationType].Add(e.Amount)
	}
	expected := repository.ReplayBalance(session.InitialAmount, entries)

	if session.Status == model.SessionOpen && !expected.Equal(session.CurrentAmount) {
		log.Warn().
			Str("session_id", sessionID.String()).
			Str("cached", session.CurrentAmount.StringFixed(2)).
			Str("replayed", expected.StringFixed(2)).
			Msg("cached drawer balance drifted from ledger replay")
	}

	entryResponses := make([]dto.CashFlowEntryResponse, 0, len(entries))
	for _, e := range entries {
		entryResponses = append(entryResponses, dto.CashFlowEntryResponse{
			OperationType: e.OperationType,
			Amount:        e.Amount,
			Note:          e.Note,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		})
	}

	resp := &dto.SessionSummaryResponse{
		Session:        *sessionToResponse(session),
		InitialAmount:  session.InitialAmount,
		CashSales:      sums[model.FlowSale],
		Withdrawals:    sums[model.FlowWithdraw],
		Deposits:       sums[model.FlowDeposit],
		Refunds:        sums[model.FlowRefund],
		ExpectedAmount: expected,
		Entries:        entryResponses,
	}
	resp.Discrepancy = session.Discrepancy
	return resp, nil
}

// ── Lookup helpers ────────────────────────────────────────────────────────────

func (s *cashierService) Active(ctx context.Context, operatorID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindOpenByOperator(ctx, operatorID)
	if err != nil || session == nil {
		return nil, fault.Validationf("nenhuma sessão de caixa aberta para este operador")
	}
	return sessionToResponse(session), nil
}

func (s *cashierService) History(ctx context.Context, page, limit int) ([]dto.SessionResponse, int64, error) {
	sessions, total, err := s.repo.ListSessions(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, total, nil
}

func (s *cashierService) FindOpenSession(ctx context.Context, sessionID uuid.UUID) (*model.CashierSession, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fault.Validationf("sessão de caixa não encontrada")
	}
	if session.Status != model.SessionOpen {
		return nil, fault.Validationf("não há sessão de caixa aberta")
	}
	return session, nil
}

func (s *cashierService) openSessionFromRequest(ctx context.Context, sessionID string) (*model.CashierSession, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session_id inválido: %w", err)
	}
	return s.FindOpenSession(ctx, id)
}

func sessionToResponse(s *model.CashierSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:            s.ID.String(),
		Terminal:      s.Terminal,
		OperatorID:    s.OperatorID.String(),
		InitialAmount: s.InitialAmount,
		CurrentAmount: s.CurrentAmount,
		Status:        s.Status,
		OpenedAt:      s.OpenedAt.Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
