package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
)

// InvoiceRepository defines invoice data operations.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entities.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Invoice, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateInvoiceInput) (*entities.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetOverdueCandidates(ctx context.Context, asOf time.Time, limit int) ([]*entities.Invoice, error)
	MarkOverdue(ctx context.Context, ids []uuid.UUID) error
}
