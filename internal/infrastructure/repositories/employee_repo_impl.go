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

// EmployeeRepository implements employee data operations.
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, employee *entities.Employee) error {
	if employee.ID == uuid.Nil {
		employee.ID = utils.GenerateUUIDv7()
	}
	if employee.EmployeeNumber == "" {
		employee.EmployeeNumber = utils.GenerateEmployeeNumber()
	}
	units, err := amount.ParseUnits(employee.Salary)
	if err != nil {
		return domainerrors.ErrInvalidInput
	}

	now := time.Now()
	m := &models.Employee{
		ID:             employee.ID,
		UserID:         employee.UserID,
		EmployeeNumber: employee.EmployeeNumber,
		FirstName:      employee.FirstName,
		LastName:       employee.LastName,
		Email:          employee.Email,
		Position:       employee.Position,
		Department:     employee.Department,
		SalaryUnits:    units,
		Currency:       employee.Currency,
		Status:         string(employee.Status),
		JoinedAt:       employee.JoinedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	*employee = *employeeToEntity(m)
	return nil
}

// GetByID gets an employee by ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Employee, error) {
	var m models.Employee
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return employeeToEntity(&m), nil
}

// GetByUserID lists employees for a user.
func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Employee, error) {
	var ms []models.Employee
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Employee, 0, len(ms))
	for i := range ms {
		out = append(out, employeeToEntity(&ms[i]))
	}
	return out, nil
}

// Update patches employee fields.
func (r *EmployeeRepository) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateEmployeeInput) (*entities.Employee, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Position != nil {
		updates["position"] = *input.Position
	}
	if input.Department != nil {
		updates["department"] = *input.Department
	}
	if input.Salary != nil {
		units, err := amount.ParseUnits(*input.Salary)
		if err != nil {
			return nil, domainerrors.ErrInvalidInput
		}
		updates["salary_units"] = units
	}
	if input.Currency != nil {
		updates["currency"] = *input.Currency
	}
	if input.Status != nil {
		if !entities.ValidEmployeeStatus(*input.Status) {
			return nil, domainerrors.ErrInvalidInput
		}
		updates["status"] = *input.Status
	}

	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete hard-deletes an employee.
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func employeeToEntity(m *models.Employee) *entities.Employee {
	return &entities.Employee{
		ID:             m.ID,
		UserID:         m.UserID,
		EmployeeNumber: m.EmployeeNumber,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Position:       m.Position,
		Department:     m.Department,
		Salary:         amount.FormatUnits(m.SalaryUnits),
		Currency:       m.Currency,
		Status:         entities.EmployeeStatus(m.Status),
		JoinedAt:       m.JoinedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
