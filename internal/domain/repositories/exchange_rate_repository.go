package repositories

import (
	"context"

	"borderlesspay.backend/internal/domain/entities"
)

// ExchangeRateRepository defines exchange-rate lookups.
type ExchangeRateRepository interface {
	Create(ctx context.Context, rate *entities.ExchangeRate) error
	Latest(ctx context.Context, fromCurrency, toCurrency string) (*entities.ExchangeRate, error)
}
