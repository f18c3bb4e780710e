package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/infrastructure/models"
	"borderlesspay.backend/pkg/amount"
	"borderlesspay.backend/pkg/utils"
)

// WalletRepository implements wallet data operations.
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository.
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet.
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	m := &models.Wallet{
		ID:           wallet.ID,
		UserID:       wallet.UserID,
		Name:         wallet.Name,
		Symbol:       wallet.Symbol,
		Kind:         string(wallet.Kind),
		BalanceUnits: wallet.BalanceUnits,
		Address:      wallet.Address,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	*wallet = *walletToEntity(m)
	return nil
}

// GetByID gets a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return walletToEntity(&m), nil
}

// GetByUserID gets active wallets for a user.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	var ms []models.Wallet
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Wallet, 0, len(ms))
	for i := range ms {
		out = append(out, walletToEntity(&ms[i]))
	}
	return out, nil
}

// GetByAddress gets a wallet by its on-ledger address.
func (r *WalletRepository) GetByAddress(ctx context.Context, address string) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return walletToEntity(&m), nil
}

// Update patches name and active flag. Wallets are never hard-deleted;
// deactivation goes through IsActive.
func (r *WalletRepository) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateWalletInput) (*entities.Wallet, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Wallet{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Debit subtracts units from the wallet balance in a single conditional
// update. Zero affected rows on an existing active wallet means the
// balance did not cover the amount.
func (r *WalletRepository) Debit(ctx context.Context, id uuid.UUID, units int64) error {
	if units <= 0 {
		return domainerrors.ErrInvalidInput
	}
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ? AND is_active = ? AND balance_units >= ?", id, true, units).
		Updates(map[string]interface{}{
			"balance_units": gorm.Expr("balance_units - ?", units),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	wallet, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !wallet.IsActive {
		return domainerrors.ErrWalletInactive
	}
	return domainerrors.ErrInsufficientFunds
}

// Credit adds units to the wallet balance.
func (r *WalletRepository) Credit(ctx context.Context, id uuid.UUID, units int64) error {
	if units <= 0 {
		return domainerrors.ErrInvalidInput
	}
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance_units": gorm.Expr("balance_units + ?", units),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func walletToEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		Symbol:       m.Symbol,
		Kind:         entities.WalletKind(m.Kind),
		Balance:      amount.FormatUnits(m.BalanceUnits),
		BalanceUnits: m.BalanceUnits,
		Address:      m.Address,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
