package repositories

import (
	"context"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
)

// TransactionRepository defines transaction audit-record operations.
// Records are insert-only; UpdateStatus exists solely for pending rows
// and enforces the transition rules.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]*entities.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error
}
