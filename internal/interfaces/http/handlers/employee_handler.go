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

type employeeService interface {
	Create(ctx context.Context, input *entities.CreateEmployeeInput) (*entities.Employee, error)
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Employee, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateEmployeeInput) (*entities.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Pay(ctx context.Context, employeeID uuid.UUID, input *entities.PayEmployeeInput) (*entities.Transaction, error)
}

// EmployeeHandler handles employee and payroll endpoints
type EmployeeHandler struct {
	employeeUsecase employeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeUsecase *usecases.EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{employeeUsecase: employeeUsecase}
}

// ListEmployees lists a user's employees. A storage failure degrades
// to an empty list.
// GET /api/v1/employees?userId=
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid or missing userId"))
		return
	}

	employees, err := h.employeeUsecase.List(c.Request.Context(), userID)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("employee listing failed, returning empty list")
		employees = nil
	}
	if employees == nil {
		employees = []*entities.Employee{}
	}

	response.Success(c, http.StatusOK, gin.H{"employees": employees})
}

// CreateEmployee creates an employee
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var input entities.CreateEmployeeInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	employee, err := h.employeeUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrAlreadyExists {
			response.Error(c, domainerrors.Conflict("Employee email already registered"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"employee": employee})
}

// GetEmployee reads one employee
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid employee ID"))
		return
	}

	employee, err := h.employeeUsecase.Get(c.Request.Context(), id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Employee not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"employee": employee})
}

// UpdateEmployee patches an employee
// PATCH /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid employee ID"))
		return
	}

	var input entities.UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	employee, err := h.employeeUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Employee not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"employee": employee})
}

// DeleteEmployee deletes an employee
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid employee ID"))
		return
	}

	if err := h.employeeUsecase.Delete(c.Request.Context(), id); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Employee not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Employee deleted"})
}

// PayEmployee debits the selected wallet by the employee's salary and
// records a completed payroll transaction
// POST /api/v1/employees/:id/pay
func (h *EmployeeHandler) PayEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid employee ID"))
		return
	}

	var input entities.PayEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.employeeUsecase.Pay(c.Request.Context(), id, &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Employee or wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}
