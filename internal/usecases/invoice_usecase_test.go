package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/usecases"
)

func TestInvoiceCreateDefaultsToDraft(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Invoice")).Return(nil)

	uc := usecases.NewInvoiceUsecase(invoiceRepo)
	invoice, err := uc.Create(context.Background(), &entities.CreateInvoiceInput{
		UserID:      uuid.NewString(),
		ClientName:  "Acme",
		Description: "consulting",
		Amount:      "1000",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, "USDC", invoice.Currency)
}

func TestInvoiceCreateRejectsUnknownStatus(t *testing.T) {
	uc := usecases.NewInvoiceUsecase(new(MockInvoiceRepository))
	_, err := uc.Create(context.Background(), &entities.CreateInvoiceInput{
		UserID:     uuid.NewString(),
		ClientName: "Acme",
		Amount:     "1000",
		Status:     "archived",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestInvoiceStats(t *testing.T) {
	userID := uuid.New()
	invoices := []*entities.Invoice{
		{Status: entities.InvoiceStatusPaid, Amount: "100"},
		{Status: entities.InvoiceStatusPaid, Amount: "50.5"},
		{Status: entities.InvoiceStatusSent, Amount: "200"},
		{Status: entities.InvoiceStatusDraft, Amount: "25"},
		{Status: entities.InvoiceStatusOverdue, Amount: "75"},
	}
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("GetByUserID", mock.Anything, userID).Return(invoices, nil)

	uc := usecases.NewInvoiceUsecase(invoiceRepo)
	stats, err := uc.Stats(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalCount)
	assert.Equal(t, "450.5", stats.TotalAmount)
	assert.Equal(t, 2, stats.PaidCount)
	assert.Equal(t, "150.5", stats.PaidAmount)
	assert.Equal(t, 2, stats.PendingCount)
	assert.Equal(t, "225", stats.PendingAmount)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, "75", stats.OverdueAmount)

	// reads only, so a second call returns identical figures
	again, err := uc.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestInvoiceStatsEmpty(t *testing.T) {
	userID := uuid.New()
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("GetByUserID", mock.Anything, userID).Return([]*entities.Invoice{}, nil)

	uc := usecases.NewInvoiceUsecase(invoiceRepo)
	stats, err := uc.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalCount)
	assert.Equal(t, "0", stats.TotalAmount)
}
