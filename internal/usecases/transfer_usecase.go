package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/domain/repositories"
	"borderlesspay.backend/internal/infrastructure/ledger"
	"borderlesspay.backend/pkg/amount"
	"borderlesspay.backend/pkg/logger"
)

// NativeTokenSentinel marks a transfer as native hbar rather than a
// custom token.
const NativeTokenSentinel = "native"

// LedgerClient is the ledger surface the dispatcher needs.
type LedgerClient interface {
	TransferHbar(ctx context.Context, fromAccount, toAccount string, tinybars int64, memo string) (string, error)
	TransferToken(ctx context.Context, tokenID, fromAccount, toAccount string, units int64, memo string) (string, error)
	TokenDecimals(ctx context.Context, tokenID string) (uint32, error)
	CreateToken(ctx context.Context, input ledger.CreateTokenInput) (string, error)
}

// TransferInput describes one ledger transfer request. Record decides
// whether a local audit row is written on success; the ledger call
// itself never depends on it.
type TransferInput struct {
	FromAccountID       string `json:"fromAccountId"`
	ToAccountID         string `json:"toAccountId"`
	Amount              string `json:"amount"`
	TokenID             string `json:"tokenId"`
	Memo                string `json:"memo"`
	SignedTransactionID string `json:"signedTransactionId"`
	UserID              string `json:"userId"`
	Record              bool   `json:"record"`
}

// TransferResult is the outcome of a dispatched transfer.
type TransferResult struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	TokenID       string `json:"tokenId,omitempty"`
}

// CreateTokenInput is the token creation payload.
type CreateTokenInput struct {
	Name          string `json:"name" binding:"required"`
	Symbol        string `json:"symbol" binding:"required"`
	Decimals      uint32 `json:"decimals"`
	InitialSupply uint64 `json:"initialSupply"`
}

// TransferUsecase dispatches transfers to the ledger and optionally
// mirrors them into the local audit table
type TransferUsecase struct {
	ledger LedgerClient
	txRepo repositories.TransactionRepository
}

// NewTransferUsecase creates a new transfer usecase
func NewTransferUsecase(ledgerClient LedgerClient, txRepo repositories.TransactionRepository) *TransferUsecase {
	return &TransferUsecase{ledger: ledgerClient, txRepo: txRepo}
}

// Dispatch routes a transfer to the right ledger path. A client-signed
// transaction id short-circuits execution entirely; otherwise the
// token id selects native hbar or token transfer. On success the local
// audit row is best-effort: the ledger is the source of truth, so an
// insert failure is logged and swallowed.
func (u *TransferUsecase) Dispatch(ctx context.Context, input *TransferInput) (*TransferResult, error) {
	if input.FromAccountID == "" || input.ToAccountID == "" || input.Amount == "" {
		return nil, domainerrors.ErrBadRequest
	}

	var (
		txID     string
		currency string
		err      error
	)
	switch {
	case input.SignedTransactionID != "":
		txID = input.SignedTransactionID
		currency = "HBAR"

	case input.TokenID == "" || input.TokenID == NativeTokenSentinel:
		var tinybars int64
		tinybars, err = amount.ParseUnits(input.Amount)
		if err != nil {
			return nil, domainerrors.ErrInvalidInput
		}
		currency = "HBAR"
		txID, err = u.ledger.TransferHbar(ctx, input.FromAccountID, input.ToAccountID, tinybars, input.Memo)

	default:
		var decimals uint32
		decimals, err = u.ledger.TokenDecimals(ctx, input.TokenID)
		if err != nil {
			return nil, domainerrors.NewLedgerError(err)
		}
		var units int64
		units, err = amount.ParseUnitsWithDecimals(input.Amount, decimals)
		if err != nil {
			return nil, domainerrors.ErrInvalidInput
		}
		currency = input.TokenID
		txID, err = u.ledger.TransferToken(ctx, input.TokenID, input.FromAccountID, input.ToAccountID, units, input.Memo)
	}
	if err != nil {
		return nil, domainerrors.NewLedgerError(err)
	}

	u.recordTransfer(ctx, input, txID, currency)

	return &TransferResult{
		TransactionID: txID,
		Status:        string(entities.TransactionStatusCompleted),
		TokenID:       input.TokenID,
	}, nil
}

// CreateToken mints a custodial token with the operator as treasury
func (u *TransferUsecase) CreateToken(ctx context.Context, input *CreateTokenInput) (string, error) {
	if input.Name == "" || input.Symbol == "" {
		return "", domainerrors.ErrBadRequest
	}
	tokenID, err := u.ledger.CreateToken(ctx, ledger.CreateTokenInput{
		Name:          input.Name,
		Symbol:        input.Symbol,
		Decimals:      input.Decimals,
		InitialSupply: input.InitialSupply,
	})
	if err != nil {
		return "", domainerrors.NewLedgerError(err)
	}
	return tokenID, nil
}

func (u *TransferUsecase) recordTransfer(ctx context.Context, input *TransferInput, txID, currency string) {
	if !input.Record {
		return
	}
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		logger.Warn(ctx, "transfer audit skipped: bad user id", zap.String("userId", input.UserID))
		return
	}

	tx := &entities.Transaction{
		UserID:      userID,
		Type:        entities.TransactionTypeOutgoing,
		Status:      entities.TransactionStatusCompleted,
		Amount:      input.Amount,
		Currency:    currency,
		FromAddress: null.StringFrom(input.FromAccountID),
		ToAddress:   null.StringFrom(input.ToAccountID),
		Hash:        null.StringFrom(txID),
	}
	if input.Memo != "" {
		tx.Note = null.StringFrom(input.Memo)
	}
	if err := u.txRepo.Create(ctx, tx); err != nil {
		logger.Warn(ctx, "transfer audit insert failed",
			zap.String("transactionId", txID), zap.Error(err))
	}
}
