package entities

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus is the employment state of an employee.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee is a payroll recipient owned by a user.
type Employee struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"userId"`
	EmployeeNumber string         `json:"employeeNumber"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email"`
	Position       string         `json:"position"`
	Department     string         `json:"department"`
	Salary         string         `json:"salary"`
	Currency       string         `json:"currency"`
	Status         EmployeeStatus `json:"status"`
	JoinedAt       *time.Time     `json:"joinedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CreateEmployeeInput is the employee creation payload.
type CreateEmployeeInput struct {
	UserID     string     `json:"userId" binding:"required"`
	FirstName  string     `json:"firstName" binding:"required"`
	LastName   string     `json:"lastName" binding:"required"`
	Email      string     `json:"email" binding:"required,email"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	Salary     string     `json:"salary" binding:"required"`
	Currency   string     `json:"currency"`
	JoinedAt   *time.Time `json:"joinedAt"`
}

// UpdateEmployeeInput is the employee patch payload; nil fields are untouched.
type UpdateEmployeeInput struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	Salary     *string `json:"salary"`
	Currency   *string `json:"currency"`
	Status     *string `json:"status"`
}

// PayEmployeeInput selects the wallet a salary payment is debited from.
type PayEmployeeInput struct {
	UserID   string `json:"userId" binding:"required"`
	WalletID string `json:"walletId" binding:"required"`
	Note     string `json:"note"`
}

// ValidEmployeeStatus reports whether s names a known employee status.
func ValidEmployeeStatus(s string) bool {
	switch EmployeeStatus(s) {
	case EmployeeStatusActive, EmployeeStatusInactive:
		return true
	}
	return false
}
