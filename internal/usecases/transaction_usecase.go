package usecases

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/domain/repositories"
	"borderlesspay.backend/pkg/amount"
	"borderlesspay.backend/pkg/logger"
	"borderlesspay.backend/pkg/redis"
)

const (
	// SwapFeeRate is the flat fee taken on every swap, charged on top
	// of the swapped amount.
	SwapFeeRate = 0.001
	// rateCacheTTL bounds how stale a cached exchange rate may get.
	rateCacheTTL = 10 * time.Minute
)

// TransactionUsecase handles transaction listing, sends and swaps
type TransactionUsecase struct {
	txRepo     repositories.TransactionRepository
	walletRepo repositories.WalletRepository
	rateRepo   repositories.ExchangeRateRepository
	uow        repositories.UnitOfWork
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(
	txRepo repositories.TransactionRepository,
	walletRepo repositories.WalletRepository,
	rateRepo repositories.ExchangeRateRepository,
	uow repositories.UnitOfWork,
) *TransactionUsecase {
	return &TransactionUsecase{
		txRepo:     txRepo,
		walletRepo: walletRepo,
		rateRepo:   rateRepo,
		uow:        uow,
	}
}

// Create records a pending transaction without touching any wallet
func (u *TransactionUsecase) Create(ctx context.Context, input *entities.CreateTransactionInput) (*entities.Transaction, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	if !entities.ValidTransactionType(input.Type) {
		return nil, domainerrors.ErrInvalidInput
	}

	tx := &entities.Transaction{
		UserID:   userID,
		Type:     entities.TransactionType(input.Type),
		Status:   entities.TransactionStatusPending,
		Amount:   input.Amount,
		Currency: input.Currency,
	}
	if input.Note != "" {
		tx.Note = null.StringFrom(input.Note)
	}
	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// List returns a user's transactions with optional filters
func (u *TransactionUsecase) List(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	return u.txRepo.GetByUserID(ctx, userID, filter)
}

// Send debits a wallet and writes the outgoing audit record in one
// transaction. The debit itself enforces the balance check, so a
// concurrent send can never drive the balance negative.
func (u *TransactionUsecase) Send(ctx context.Context, input *entities.SendInput) (*entities.Transaction, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	walletID, err := uuid.Parse(input.FromWalletID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	units, err := amount.ParseUnits(input.Amount)
	if err != nil || units == 0 {
		return nil, domainerrors.ErrInvalidInput
	}

	wallet, err := u.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	tx := &entities.Transaction{
		UserID:      userID,
		Type:        entities.TransactionTypeOutgoing,
		Status:      entities.TransactionStatusCompleted,
		Amount:      amount.FormatUnits(units),
		Currency:    input.Currency,
		FromAddress: null.StringFrom(wallet.Address),
		ToAddress:   null.StringFrom(input.ToAddress),
	}
	if input.Note != "" {
		tx.Note = null.StringFrom(input.Note)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.walletRepo.Debit(ctx, walletID, units); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Swap moves value between two wallets of the same user at the current
// exchange rate. The source wallet is debited the amount plus fee, the
// destination credited amount times rate, atomically.
func (u *TransactionUsecase) Swap(ctx context.Context, input *entities.SwapInput) (*entities.Transaction, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	fromID, err := uuid.Parse(input.FromWalletID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	toID, err := uuid.Parse(input.ToWalletID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	if fromID == toID {
		return nil, domainerrors.ErrInvalidInput
	}
	units, err := amount.ParseUnits(input.FromAmount)
	if err != nil || units == 0 {
		return nil, domainerrors.ErrInvalidInput
	}

	fromWallet, err := u.walletRepo.GetByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	toWallet, err := u.walletRepo.GetByID(ctx, toID)
	if err != nil {
		return nil, err
	}
	if fromWallet.UserID != userID || toWallet.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	rate := u.lookupRate(ctx, input.FromCurrency, input.ToCurrency)
	feeUnits := amount.ApplyRate(units, SwapFeeRate)
	creditUnits := amount.ApplyRate(units, rate)

	tx := &entities.Transaction{
		UserID:      userID,
		Type:        entities.TransactionTypeSwap,
		Status:      entities.TransactionStatusCompleted,
		Amount:      amount.FormatUnits(units),
		Currency:    input.FromCurrency,
		FromAddress: null.StringFrom(fromWallet.Address),
		ToAddress:   null.StringFrom(toWallet.Address),
		Fee:         null.StringFrom(amount.FormatUnits(feeUnits)),
		Metadata: fmt.Sprintf(`{"rate":%s,"toCurrency":%q,"toAmount":%q}`,
			strconv.FormatFloat(rate, 'f', -1, 64), input.ToCurrency, amount.FormatUnits(creditUnits)),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.walletRepo.Debit(ctx, fromID, units+feeUnits); err != nil {
			return err
		}
		if err := u.walletRepo.Credit(ctx, toID, creditUnits); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// lookupRate resolves the most recent rate for a pair: Redis cache
// first, then the exchange_rates table, then 1.0 when the pair is
// unknown.
func (u *TransactionUsecase) lookupRate(ctx context.Context, fromCurrency, toCurrency string) float64 {
	cacheKey := "rate:" + fromCurrency + ":" + toCurrency

	if redis.GetClient() != nil {
		if cached, err := redis.Get(ctx, cacheKey); err == nil {
			if rate, err := strconv.ParseFloat(cached, 64); err == nil && rate > 0 {
				return rate
			}
		}
	}

	stored, err := u.rateRepo.Latest(ctx, fromCurrency, toCurrency)
	if err != nil {
		return 1.0
	}

	if redis.GetClient() != nil {
		if err := redis.Set(ctx, cacheKey, strconv.FormatFloat(stored.Rate, 'f', -1, 64), rateCacheTTL); err != nil {
			logger.Warn(ctx, "exchange rate cache write failed", zap.Error(err))
		}
	}
	return stored.Rate
}
