package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/infrastructure/models"
	"borderlesspay.backend/pkg/amount"
	"borderlesspay.backend/pkg/utils"
)

// TransactionRepository implements transaction audit-record operations.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts one audit row. A duplicate hash surfaces as
// ErrAlreadyExists so callers can treat the insert as idempotent.
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = utils.GenerateUUIDv7()
	}
	units, err := amount.ParseUnits(tx.Amount)
	if err != nil {
		return domainerrors.ErrInvalidInput
	}

	now := time.Now()
	m := &models.Transaction{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Status:      string(tx.Status),
		AmountUnits: units,
		Currency:    tx.Currency,
		FromAddress: nullToPtr(tx.FromAddress),
		ToAddress:   nullToPtr(tx.ToAddress),
		Note:        nullToPtr(tx.Note),
		Hash:        nullToPtr(tx.Hash),
		Metadata:    tx.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tx.Fee.Valid {
		feeUnits, err := amount.ParseUnits(tx.Fee.String)
		if err != nil {
			return domainerrors.ErrInvalidInput
		}
		m.FeeUnits = &feeUnits
	}
	if m.Metadata == "" {
		m.Metadata = "{}"
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	tx.CreatedAt = m.CreatedAt
	tx.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// GetByUserID lists transactions for a user, newest first, with optional
// status/type filters and a limit.
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var ms []models.Transaction
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, transactionToEntity(&ms[i]))
	}
	return out, nil
}

// UpdateStatus moves a pending transaction to a terminal state. Illegal
// transitions are rejected.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !entities.CanTransitionTransaction(current.Status, status) {
		return domainerrors.ErrInvalidTransition
	}

	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, string(current.Status)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		}).Error
}

func transactionToEntity(m *models.Transaction) *entities.Transaction {
	e := &entities.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entities.TransactionType(m.Type),
		Status:      entities.TransactionStatus(m.Status),
		Amount:      amount.FormatUnits(m.AmountUnits),
		Currency:    m.Currency,
		FromAddress: null.StringFromPtr(m.FromAddress),
		ToAddress:   null.StringFromPtr(m.ToAddress),
		Note:        null.StringFromPtr(m.Note),
		Hash:        null.StringFromPtr(m.Hash),
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.FeeUnits != nil {
		e.Fee = null.StringFrom(amount.FormatUnits(*m.FeeUnits))
	}
	return e
}

func nullToPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
