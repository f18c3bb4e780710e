package entities

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is a billing document issued by a user to a client.
type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"userId"`
	InvoiceNumber string        `json:"invoiceNumber"`
	ClientName    string        `json:"clientName"`
	Description   string        `json:"description"`
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Status        InvoiceStatus `json:"status"`
	DueDate       *time.Time    `json:"dueDate,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateInvoiceInput is the invoice creation payload.
type CreateInvoiceInput struct {
	UserID      string     `json:"userId" binding:"required"`
	ClientName  string     `json:"clientName" binding:"required"`
	Description string     `json:"description"`
	Amount      string     `json:"amount" binding:"required"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateInvoiceInput is the invoice patch payload; nil fields are untouched.
type UpdateInvoiceInput struct {
	ClientName  *string    `json:"clientName"`
	Description *string    `json:"description"`
	Amount      *string    `json:"amount"`
	Currency    *string    `json:"currency"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// ValidInvoiceStatus reports whether s names a known invoice status.
func ValidInvoiceStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// CanTransitionInvoice reports whether an invoice status change is legal:
// draft -> sent, sent -> paid or overdue, overdue -> paid. Paid is
// terminal and no status moves backwards.
func CanTransitionInvoice(from, to InvoiceStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case InvoiceStatusDraft:
		return to == InvoiceStatusSent
	case InvoiceStatusSent:
		return to == InvoiceStatusPaid || to == InvoiceStatusOverdue
	case InvoiceStatusOverdue:
		return to == InvoiceStatusPaid
	}
	return false
}
