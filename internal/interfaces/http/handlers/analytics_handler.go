package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/interfaces/http/response"
	"borderlesspay.backend/internal/usecases"
)

type analyticsService interface {
	Overview(ctx context.Context, userID uuid.UUID) (*usecases.AnalyticsOverview, error)
}

// AnalyticsHandler handles dashboard aggregation endpoints
type AnalyticsHandler struct {
	analyticsUsecase analyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsUsecase *usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// Overview aggregates wallets, transactions, invoices and payroll into
// one dashboard summary
// GET /api/v1/analytics/overview?userId=
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid or missing userId"))
		return
	}

	overview, err := h.analyticsUsecase.Overview(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"overview": overview})
}
