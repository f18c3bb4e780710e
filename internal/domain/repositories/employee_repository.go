package repositories

import (
	"context"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
)

// EmployeeRepository defines employee data operations.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entities.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Employee, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Employee, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateEmployeeInput) (*entities.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
