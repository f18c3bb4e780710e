package entities

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeRate is a point-in-time conversion rate for a currency pair.
// Lookups always take the most recent row; a missing pair falls back to
// a rate of 1.0.
type ExchangeRate struct {
	ID           uuid.UUID `json:"id"`
	FromCurrency string    `json:"fromCurrency"`
	ToCurrency   string    `json:"toCurrency"`
	Rate         float64   `json:"rate"`
	CreatedAt    time.Time `json:"createdAt"`
}
