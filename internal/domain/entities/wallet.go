package entities

import (
	"time"

	"github.com/google/uuid"
)

// WalletKind distinguishes ledger-backed holdings from local placeholders.
type WalletKind string

const (
	WalletKindCustodialStablecoin WalletKind = "custodial_stablecoin"
	WalletKindLocalCurrency       WalletKind = "local_currency"
)

// Wallet is a named currency holding for a user. Balance is kept in
// integer base units (10^-8) and rendered as a decimal string, so it can
// never carry more than 8 fractional digits.
type Wallet struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	Name         string     `json:"name"`
	Symbol       string     `json:"symbol"`
	Kind         WalletKind `json:"type"`
	Balance      string     `json:"balance"`
	BalanceUnits int64      `json:"-"`
	Address      string     `json:"address"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateWalletInput is the wallet creation payload.
type CreateWalletInput struct {
	UserID  string `json:"userId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Symbol  string `json:"symbol" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// UpdateWalletInput is the wallet patch payload; nil fields are untouched.
type UpdateWalletInput struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// ValidWalletKind reports whether s names a known wallet kind.
func ValidWalletKind(s string) bool {
	switch WalletKind(s) {
	case WalletKindCustodialStablecoin, WalletKindLocalCurrency:
		return true
	}
	return false
}
