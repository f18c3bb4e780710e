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
	"borderlesspay.backend/pkg/utils"
)

// ExchangeRateRepository implements exchange-rate lookups.
type ExchangeRateRepository struct {
	db *gorm.DB
}

// NewExchangeRateRepository creates a new exchange rate repository.
func NewExchangeRateRepository(db *gorm.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// Create records a rate observation for a currency pair.
func (r *ExchangeRateRepository) Create(ctx context.Context, rate *entities.ExchangeRate) error {
	if rate.ID == uuid.Nil {
		rate.ID = utils.GenerateUUIDv7()
	}
	m := &models.ExchangeRate{
		ID:           rate.ID,
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate,
		CreatedAt:    time.Now(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	rate.CreatedAt = m.CreatedAt
	return nil
}

// Latest returns the most recent rate for a currency pair.
func (r *ExchangeRateRepository) Latest(ctx context.Context, fromCurrency, toCurrency string) (*entities.ExchangeRate, error) {
	var m models.ExchangeRate
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("from_currency = ? AND to_currency = ?", fromCurrency, toCurrency).
		Order("created_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.ExchangeRate{
		ID:           m.ID,
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		Rate:         m.Rate,
		CreatedAt:    m.CreatedAt,
	}, nil
}
