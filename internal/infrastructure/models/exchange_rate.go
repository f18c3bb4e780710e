package models

import (
	"time"

	"github.com/google/uuid"
)

type ExchangeRate struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FromCurrency string    `gorm:"type:varchar(16);not null;index:idx_rate_pair"`
	ToCurrency   string    `gorm:"type:varchar(16);not null;index:idx_rate_pair"`
	Rate         float64   `gorm:"not null"`
	CreatedAt    time.Time
}

func (ExchangeRate) TableName() string { return "exchange_rates" }
