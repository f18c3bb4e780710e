package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/interfaces/http/response"
	"borderlesspay.backend/internal/usecases"
	"borderlesspay.backend/pkg/logger"
)

type invoiceService interface {
	Create(ctx context.Context, input *entities.CreateInvoiceInput) (*entities.Invoice, error)
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Invoice, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateInvoiceInput) (*entities.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (*usecases.InvoiceStats, error)
}

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	invoiceUsecase invoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceUsecase *usecases.InvoiceUsecase) *InvoiceHandler {
	return &InvoiceHandler{invoiceUsecase: invoiceUsecase}
}

// ListInvoices lists a user's invoices. A storage failure degrades to
// an empty list.
// GET /api/v1/invoices?userId=
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid or missing userId"))
		return
	}

	invoices, err := h.invoiceUsecase.List(c.Request.Context(), userID)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("invoice listing failed, returning empty list")
		invoices = nil
	}
	if invoices == nil {
		invoices = []*entities.Invoice{}
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}

// CreateInvoice creates an invoice
// POST /api/v1/invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var input entities.CreateInvoiceInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	invoice, err := h.invoiceUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"invoice": invoice})
}

// GetInvoice reads one invoice
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid invoice ID"))
		return
	}

	invoice, err := h.invoiceUsecase.Get(c.Request.Context(), id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Invoice not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": invoice})
}

// UpdateInvoice patches an invoice. Status changes go through the
// draft/sent/paid/overdue transition rules.
// PATCH /api/v1/invoices/:id
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid invoice ID"))
		return
	}

	var input entities.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	invoice, err := h.invoiceUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Invoice not found"))
			return
		}
		if err == domainerrors.ErrInvalidTransition {
			response.Error(c, domainerrors.BadRequest("Invalid status transition"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": invoice})
}

// DeleteInvoice deletes an invoice
// DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid invoice ID"))
		return
	}

	if err := h.invoiceUsecase.Delete(c.Request.Context(), id); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Invoice not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Invoice deleted"})
}

// InvoiceStats aggregates a user's invoices by status
// GET /api/v1/invoices/stats?userId=
func (h *InvoiceHandler) InvoiceStats(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid or missing userId"))
		return
	}

	stats, err := h.invoiceUsecase.Stats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
