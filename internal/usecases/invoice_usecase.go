package usecases

import (
	"context"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/domain/repositories"
	"borderlesspay.backend/pkg/amount"
)

// InvoiceStats are the aggregate figures for a user's invoices.
// Amounts are decimal strings in the invoice currency.
type InvoiceStats struct {
	TotalCount    int    `json:"totalCount"`
	TotalAmount   string `json:"totalAmount"`
	PaidCount     int    `json:"paidCount"`
	PaidAmount    string `json:"paidAmount"`
	PendingCount  int    `json:"pendingCount"`
	PendingAmount string `json:"pendingAmount"`
	OverdueCount  int    `json:"overdueCount"`
	OverdueAmount string `json:"overdueAmount"`
}

// InvoiceUsecase handles invoice business logic
type InvoiceUsecase struct {
	invoiceRepo repositories.InvoiceRepository
}

// NewInvoiceUsecase creates a new invoice usecase
func NewInvoiceUsecase(invoiceRepo repositories.InvoiceRepository) *InvoiceUsecase {
	return &InvoiceUsecase{invoiceRepo: invoiceRepo}
}

// Create creates an invoice. Status defaults to draft; the invoice
// number is generated on insert.
func (u *InvoiceUsecase) Create(ctx context.Context, input *entities.CreateInvoiceInput) (*entities.Invoice, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}

	status := entities.InvoiceStatusDraft
	if input.Status != "" {
		if !entities.ValidInvoiceStatus(input.Status) {
			return nil, domainerrors.ErrInvalidInput
		}
		status = entities.InvoiceStatus(input.Status)
	}
	currency := input.Currency
	if currency == "" {
		currency = "USDC"
	}

	invoice := &entities.Invoice{
		UserID:      userID,
		ClientName:  input.ClientName,
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    currency,
		Status:      status,
		DueDate:     input.DueDate,
	}
	if err := u.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// List returns a user's invoices
func (u *InvoiceUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Invoice, error) {
	return u.invoiceRepo.GetByUserID(ctx, userID)
}

// Get returns one invoice
func (u *InvoiceUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Invoice, error) {
	return u.invoiceRepo.GetByID(ctx, id)
}

// Update patches invoice fields through the status transition rules
func (u *InvoiceUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateInvoiceInput) (*entities.Invoice, error) {
	return u.invoiceRepo.Update(ctx, id, input)
}

// Delete hard-deletes an invoice
func (u *InvoiceUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.invoiceRepo.Delete(ctx, id)
}

// Stats reduces a user's full invoice set into aggregate counts and
// amounts. Reads only, so repeated calls without writes in between
// return identical figures.
func (u *InvoiceUsecase) Stats(ctx context.Context, userID uuid.UUID) (*InvoiceStats, error) {
	invoices, err := u.invoiceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var totalUnits, paidUnits, pendingUnits, overdueUnits int64
	stats := &InvoiceStats{TotalCount: len(invoices)}
	for _, inv := range invoices {
		units, err := amount.ParseUnits(inv.Amount)
		if err != nil {
			continue
		}
		totalUnits += units
		switch inv.Status {
		case entities.InvoiceStatusPaid:
			stats.PaidCount++
			paidUnits += units
		case entities.InvoiceStatusOverdue:
			stats.OverdueCount++
			overdueUnits += units
		default:
			stats.PendingCount++
			pendingUnits += units
		}
	}

	stats.TotalAmount = amount.FormatUnits(totalUnits)
	stats.PaidAmount = amount.FormatUnits(paidUnits)
	stats.PendingAmount = amount.FormatUnits(pendingUnits)
	stats.OverdueAmount = amount.FormatUnits(overdueUnits)
	return stats, nil
}
