package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet keeps the cached balance in integer base units (10^-8 of the
// display unit) so the conditional debit stays a single UPDATE.
type Wallet struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Symbol       string    `gorm:"type:varchar(16);not null"`
	Kind         string    `gorm:"type:varchar(32);not null"`
	BalanceUnits int64     `gorm:"not null;default:0"`
	Address      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (Wallet) TableName() string { return "wallets" }
