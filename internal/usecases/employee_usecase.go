package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/domain/repositories"
	"borderlesspay.backend/pkg/amount"
)

// EmployeeUsecase handles employee management and payroll
type EmployeeUsecase struct {
	employeeRepo repositories.EmployeeRepository
	walletRepo   repositories.WalletRepository
	txRepo       repositories.TransactionRepository
	uow          repositories.UnitOfWork
}

// NewEmployeeUsecase creates a new employee usecase
func NewEmployeeUsecase(
	employeeRepo repositories.EmployeeRepository,
	walletRepo repositories.WalletRepository,
	txRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
) *EmployeeUsecase {
	return &EmployeeUsecase{
		employeeRepo: employeeRepo,
		walletRepo:   walletRepo,
		txRepo:       txRepo,
		uow:          uow,
	}
}

// Create creates an employee. The employee number is generated on
// insert.
func (u *EmployeeUsecase) Create(ctx context.Context, input *entities.CreateEmployeeInput) (*entities.Employee, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	if _, err := amount.ParseUnits(input.Salary); err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	currency := input.Currency
	if currency == "" {
		currency = "USDC"
	}

	employee := &entities.Employee{
		UserID:     userID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Position:   input.Position,
		Department: input.Department,
		Salary:     input.Salary,
		Currency:   currency,
		Status:     entities.EmployeeStatusActive,
		JoinedAt:   input.JoinedAt,
	}
	if err := u.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// List returns a user's employees
func (u *EmployeeUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Employee, error) {
	return u.employeeRepo.GetByUserID(ctx, userID)
}

// Get returns one employee
func (u *EmployeeUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Employee, error) {
	return u.employeeRepo.GetByID(ctx, id)
}

// Update patches employee fields
func (u *EmployeeUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateEmployeeInput) (*entities.Employee, error) {
	return u.employeeRepo.Update(ctx, id, input)
}

// Delete removes an employee
func (u *EmployeeUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.employeeRepo.Delete(ctx, id)
}

// Pay debits the selected wallet by the employee's salary and writes
// the payroll audit record atomically. An insufficient balance leaves
// both the wallet and the transaction table untouched.
func (u *EmployeeUsecase) Pay(ctx context.Context, employeeID uuid.UUID, input *entities.PayEmployeeInput) (*entities.Transaction, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	walletID, err := uuid.Parse(input.WalletID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}

	employee, err := u.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	if employee.Status != entities.EmployeeStatusActive {
		return nil, domainerrors.BadRequest("employee is not active")
	}

	wallet, err := u.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	units, err := amount.ParseUnits(employee.Salary)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}

	tx := &entities.Transaction{
		UserID:      userID,
		Type:        entities.TransactionTypeOutgoing,
		Status:      entities.TransactionStatusCompleted,
		Amount:      amount.FormatUnits(units),
		Currency:    employee.Currency,
		FromAddress: null.StringFrom(wallet.Address),
		Metadata: fmt.Sprintf(`{"employeeId":%q,"employeeNumber":%q}`,
			employee.ID, employee.EmployeeNumber),
	}
	if input.Note != "" {
		tx.Note = null.StringFrom(input.Note)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.walletRepo.Debit(ctx, walletID, units); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}
