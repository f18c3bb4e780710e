package usecases

import (
	"context"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/domain/repositories"
)

// WalletUsecase handles wallet business logic
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(walletRepo repositories.WalletRepository) *WalletUsecase {
	return &WalletUsecase{walletRepo: walletRepo}
}

// Create creates a wallet for a user
func (u *WalletUsecase) Create(ctx context.Context, input *entities.CreateWalletInput) (*entities.Wallet, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	if !entities.ValidWalletKind(input.Type) {
		return nil, domainerrors.ErrInvalidInput
	}

	wallet := &entities.Wallet{
		UserID:   userID,
		Name:     input.Name,
		Symbol:   input.Symbol,
		Kind:     entities.WalletKind(input.Type),
		Address:  input.Address,
		IsActive: true,
	}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// List returns the active wallets of a user
func (u *WalletUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	return u.walletRepo.GetByUserID(ctx, userID)
}

// Get returns one wallet
func (u *WalletUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	return u.walletRepo.GetByID(ctx, id)
}

// Update patches wallet fields
func (u *WalletUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateWalletInput) (*entities.Wallet, error) {
	return u.walletRepo.Update(ctx, id, input)
}
