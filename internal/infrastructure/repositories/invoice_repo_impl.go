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
	"borderlesspay.backend/pkg/amount"
	"borderlesspay.backend/pkg/utils"
)

// InvoiceRepository implements invoice data operations.
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entities.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = utils.GenerateUUIDv7()
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = utils.GenerateInvoiceNumber()
	}
	units, err := amount.ParseUnits(invoice.Amount)
	if err != nil {
		return domainerrors.ErrInvalidInput
	}

	now := time.Now()
	m := &models.Invoice{
		ID:            invoice.ID,
		UserID:        invoice.UserID,
		InvoiceNumber: invoice.InvoiceNumber,
		ClientName:    invoice.ClientName,
		Description:   invoice.Description,
		AmountUnits:   units,
		Currency:      invoice.Currency,
		Status:        string(invoice.Status),
		DueDate:       invoice.DueDate,
		PaidAt:        invoice.PaidAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	*invoice = *invoiceToEntity(m)
	return nil
}

// GetByID gets an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Invoice, error) {
	var m models.Invoice
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return invoiceToEntity(&m), nil
}

// GetByUserID lists invoices for a user, newest first.
func (r *InvoiceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Invoice, error) {
	var ms []models.Invoice
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Invoice, 0, len(ms))
	for i := range ms {
		out = append(out, invoiceToEntity(&ms[i]))
	}
	return out, nil
}

// Update patches invoice fields. Status changes must follow the invoice
// transition graph; moving to paid stamps paid_at.
func (r *InvoiceRepository) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateInvoiceInput) (*entities.Invoice, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.ClientName != nil {
		updates["client_name"] = *input.ClientName
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Amount != nil {
		units, err := amount.ParseUnits(*input.Amount)
		if err != nil {
			return nil, domainerrors.ErrInvalidInput
		}
		updates["amount_units"] = units
	}
	if input.Currency != nil {
		updates["currency"] = *input.Currency
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if input.Status != nil {
		if !entities.ValidInvoiceStatus(*input.Status) {
			return nil, domainerrors.ErrInvalidInput
		}
		next := entities.InvoiceStatus(*input.Status)
		if !entities.CanTransitionInvoice(current.Status, next) {
			return nil, domainerrors.ErrInvalidTransition
		}
		updates["status"] = string(next)
		if next == entities.InvoiceStatusPaid && current.PaidAt == nil {
			updates["paid_at"] = time.Now()
		}
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete hard-deletes an invoice.
func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetOverdueCandidates returns sent invoices whose due date has passed.
func (r *InvoiceRepository) GetOverdueCandidates(ctx context.Context, asOf time.Time, limit int) ([]*entities.Invoice, error) {
	var ms []models.Invoice
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", string(entities.InvoiceStatusSent), asOf).
		Order("due_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Invoice, 0, len(ms))
	for i := range ms {
		out = append(out, invoiceToEntity(&ms[i]))
	}
	return out, nil
}

// MarkOverdue flips the given sent invoices to overdue.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id IN ? AND status = ?", ids, string(entities.InvoiceStatusSent)).
		Updates(map[string]interface{}{
			"status":     string(entities.InvoiceStatusOverdue),
			"updated_at": time.Now(),
		}).Error
}

func invoiceToEntity(m *models.Invoice) *entities.Invoice {
	return &entities.Invoice{
		ID:            m.ID,
		UserID:        m.UserID,
		InvoiceNumber: m.InvoiceNumber,
		ClientName:    m.ClientName,
		Description:   m.Description,
		Amount:        amount.FormatUnits(m.AmountUnits),
		Currency:      m.Currency,
		Status:        entities.InvoiceStatus(m.Status),
		DueDate:       m.DueDate,
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
