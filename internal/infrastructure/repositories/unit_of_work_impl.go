package repositories

import (
	"context"

	"gorm.io/gorm"
	domainRepos "borderlesspay.backend/internal/domain/repositories"
)

type contextKey string

const txKey contextKey = "tx_db"

// GetDB returns the transaction-bound DB from the context if a unit of
// work is active, otherwise the fallback connection.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// UnitOfWorkImpl implements UnitOfWork on a GORM transaction.
type UnitOfWorkImpl struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork.
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// Do runs fn inside a transaction. Repositories reached through the
// context passed to fn share the transaction; any error rolls it back.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested Do calls reuse the surrounding transaction.
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}
