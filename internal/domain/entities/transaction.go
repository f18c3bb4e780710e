package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionType is the direction of a value movement.
type TransactionType string

const (
	TransactionTypeIncoming TransactionType = "incoming"
	TransactionTypeOutgoing TransactionType = "outgoing"
	TransactionTypeSwap     TransactionType = "swap"
)

// TransactionStatus is the lifecycle state of a transaction record.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is an audit record of a value movement. Rows are written
// once, in their terminal state for ledger-backed flows; pending rows may
// only move to completed, failed or cancelled.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Amount      string            `json:"amount"`
	Currency    string            `json:"currency"`
	FromAddress null.String       `json:"fromAddress,omitempty"`
	ToAddress   null.String       `json:"toAddress,omitempty"`
	Fee         null.String       `json:"fee,omitempty"`
	Note        null.String       `json:"note,omitempty"`
	Hash        null.String       `json:"hash,omitempty"`
	Metadata    string            `json:"metadata"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CreateTransactionInput creates a pending transaction record directly.
type CreateTransactionInput struct {
	UserID   string `json:"userId" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
	Note     string `json:"note"`
}

// SendInput debits a wallet and records an outgoing transfer.
type SendInput struct {
	UserID       string `json:"userId" binding:"required"`
	FromWalletID string `json:"fromWalletId" binding:"required"`
	ToAddress    string `json:"toAddress" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Currency     string `json:"currency" binding:"required"`
	Note         string `json:"note"`
}

// SwapInput moves value between two wallets at the looked-up rate.
type SwapInput struct {
	UserID       string `json:"userId" binding:"required"`
	FromWalletID string `json:"fromWalletId" binding:"required"`
	ToWalletID   string `json:"toWalletId" binding:"required"`
	FromAmount   string `json:"fromAmount" binding:"required"`
	FromCurrency string `json:"fromCurrency" binding:"required"`
	ToCurrency   string `json:"toCurrency" binding:"required"`
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Status string
	Type   string
	Limit  int
}

// ValidTransactionType reports whether s names a known direction.
func ValidTransactionType(s string) bool {
	switch TransactionType(s) {
	case TransactionTypeIncoming, TransactionTypeOutgoing, TransactionTypeSwap:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s names a known status.
func ValidTransactionStatus(s string) bool {
	switch TransactionStatus(s) {
	case TransactionStatusPending, TransactionStatusCompleted,
		TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTransaction reports whether a transaction status change is
// legal. Only pending rows may move, and only to a terminal state.
func CanTransitionTransaction(from, to TransactionStatus) bool {
	if from != TransactionStatusPending {
		return false
	}
	switch to {
	case TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}
