package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
)

type CashierRepository interface {
	CreateSession(ctx context.Context, s *model.CashierSession) error
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashierSession, error)
	FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*model.CashierSession, error)
	UpdateSession(ctx context.Context, tx *gorm.DB, s *model.CashierSession) error
	// AppendEntry inserts a ledger row and applies its signed amount to the
	// session's cached current_amount in one statement pair — a single atomic
	// read-modify-write per append so concurrent sales never lose updates.
	AppendEntry(ctx context.Context, tx *gorm.DB, e *model.CashFlowEntry) error
	ListEntries(ctx context.Context, sessionID uuid.UUID) ([]model.CashFlowEntry, error)
	ListSessions(ctx context.Context, page, limit int) ([]model.CashierSession, int64, error)
	DB() *gorm.DB
}

type cashierRepo struct{ db *gorm.DB }

func NewCashierRepository(db *gorm.DB) CashierRepository { return &cashierRepo{db: db} }

func (r *cashierRepo) DB() *gorm.DB { return r.db }

func (r *cashierRepo) CreateSession(ctx context.Context, s *model.CashierSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cashierRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashierSession, error) {
	var s model.CashierSession
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *cashierRepo) FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*model.CashierSession, error) {
	var s model.CashierSession
	err := r.db.WithContext(ctx).
		Where("operator_id = ? AND status = 'open'", operatorID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashierRepo) UpdateSession(ctx context.Context, tx *gorm.DB, s *model.CashierSession) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(s).Error
}

func (r *cashierRepo) AppendEntry(ctx context.Context, tx *gorm.DB, e *model.CashFlowEntry) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		return err
	}
	delta := e.Signed()
	if delta.IsZero() {
		return nil
	}
	// UPDATE … SET current_amount = current_amount + delta: the read-modify-
	// write happens inside the database, not in Go.
	return tx.WithContext(ctx).Model(&model.CashierSession{}).
		Where("id = ?", e.SessionID).
		Update("current_amount", gorm.Expr("current_amount + ?", delta)).Error
}

func (r *cashierRepo) ListEntries(ctx context.Context, sessionID uuid.UUID) ([]model.CashFlowEntry, error) {
	var entries []model.CashFlowEntry
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *cashierRepo) ListSessions(ctx context.Context, page, limit int) ([]model.CashierSession, int64, error) {
	var sessions []model.CashierSession
	var total int64
	q := r.db.WithContext(ctx).Model(&model.CashierSession{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("opened_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

// ReplayBalance recomputes the drawer balance purely from the ledger:
// initial amount plus the signed sum of every entry. Used by Summary to
// verify the cached current_amount never drifts.
func ReplayBalance(initial decimal.Decimal, entries []model.CashFlowEntry) decimal.Decimal {
	balance := initial
	for _, e := range entries {
		balance = balance.Add(e.Signed())
	}
	return balance
}
