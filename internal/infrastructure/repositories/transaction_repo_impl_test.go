package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
)

func newTransaction(userID uuid.UUID, txType entities.TransactionType, status entities.TransactionStatus, amount string) *entities.Transaction {
	return &entities.Transaction{
		UserID:   userID,
		Type:     txType,
		Status:   status,
		Amount:   amount,
		Currency: "USDC",
	}
}

func TestTransactionCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	tx := newTransaction(userID, entities.TransactionTypeOutgoing, entities.TransactionStatusCompleted, "12.5")
	tx.Hash = null.StringFrom("0.0.1001-1761927693-915611221")
	tx.Fee = null.StringFrom("0.0125")
	require.NoError(t, repo.Create(ctx, tx))

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.5", got.Amount)
	assert.Equal(t, "0.0125", got.Fee.String)
	assert.Equal(t, "{}", got.Metadata)
	assert.Equal(t, entities.TransactionStatusCompleted, got.Status)
}

func TestTransactionDuplicateHash(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	first := newTransaction(userID, entities.TransactionTypeOutgoing, entities.TransactionStatusCompleted, "1")
	first.Hash = null.StringFrom("dup-hash")
	require.NoError(t, repo.Create(ctx, first))

	second := newTransaction(userID, entities.TransactionTypeOutgoing, entities.TransactionStatusCompleted, "1")
	second.Hash = null.StringFrom("dup-hash")
	assert.ErrorIs(t, repo.Create(ctx, second), domainerrors.ErrAlreadyExists)
}

func TestTransactionInvalidAmount(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)

	tx := newTransaction(uuid.New(), entities.TransactionTypeOutgoing, entities.TransactionStatusPending, "not-a-number")
	assert.ErrorIs(t, repo.Create(context.Background(), tx), domainerrors.ErrInvalidInput)
}

func TestTransactionListFilter(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, newTransaction(userID, entities.TransactionTypeOutgoing, entities.TransactionStatusCompleted, "1")))
	require.NoError(t, repo.Create(ctx, newTransaction(userID, entities.TransactionTypeIncoming, entities.TransactionStatusPending, "2")))
	require.NoError(t, repo.Create(ctx, newTransaction(userID, entities.TransactionTypeSwap, entities.TransactionStatusCompleted, "3")))
	require.NoError(t, repo.Create(ctx, newTransaction(uuid.New(), entities.TransactionTypeOutgoing, entities.TransactionStatusCompleted, "4")))

	all, err := repo.GetByUserID(ctx, userID, entities.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	completed, err := repo.GetByUserID(ctx, userID, entities.TransactionFilter{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	swaps, err := repo.GetByUserID(ctx, userID, entities.TransactionFilter{Type: "swap"})
	require.NoError(t, err)
	assert.Len(t, swaps, 1)

	limited, err := repo.GetByUserID(ctx, userID, entities.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestTransactionUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	tx := newTransaction(uuid.New(), entities.TransactionTypeOutgoing, entities.TransactionStatusPending, "1")
	require.NoError(t, repo.Create(ctx, tx))

	require.NoError(t, repo.UpdateStatus(ctx, tx.ID, entities.TransactionStatusCompleted))

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionStatusCompleted, got.Status)

	// completed is terminal
	err = repo.UpdateStatus(ctx, tx.ID, entities.TransactionStatusPending)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}
