package repositories

import (
	"context"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations. Debit is a single
// conditional update: it only subtracts when the balance covers the
// amount, so two concurrent debits can never drive a balance negative.
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error)
	GetByAddress(ctx context.Context, address string) (*entities.Wallet, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateWalletInput) (*entities.Wallet, error)
	Debit(ctx context.Context, id uuid.UUID, units int64) error
	Credit(ctx context.Context, id uuid.UUID, units int64) error
}
