package repositories

import "context"

// UnitOfWork runs a function inside a database transaction. Repositories
// called with the context passed to fn participate in the same
// transaction, so debit-then-audit sequences commit or roll back as one.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
