package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/interfaces/http/response"
	"borderlesspay.backend/internal/usecases"
	"borderlesspay.backend/pkg/logger"
)

type transactionService interface {
	Create(ctx context.Context, input *entities.CreateTransactionInput) (*entities.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]*entities.Transaction, error)
	Send(ctx context.Context, input *entities.SendInput) (*entities.Transaction, error)
	Swap(ctx context.Context, input *entities.SwapInput) (*entities.Transaction, error)
}

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	txUsecase transactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{txUsecase: txUsecase}
}

// ListTransactions lists a user's transactions, newest first. A
// storage failure degrades to an empty list.
// GET /api/v1/transactions?userId=&status=&type=&limit=
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid or missing userId"))
		return
	}

	filter := entities.TransactionFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(c, domainerrors.BadRequest("Invalid limit"))
			return
		}
		filter.Limit = limit
	}

	transactions, err := h.txUsecase.List(c.Request.Context(), userID, filter)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("transaction listing failed, returning empty list")
		transactions = nil
	}
	if transactions == nil {
		transactions = []*entities.Transaction{}
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": transactions})
}

// CreateTransaction records a pending transaction without moving funds
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var input entities.CreateTransactionInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.txUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// Send debits a wallet and records the outgoing transfer
// POST /api/v1/transactions/send
func (h *TransactionHandler) Send(c *gin.Context) {
	var input entities.SendInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.txUsecase.Send(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// Swap converts value between two wallets at the current rate
// POST /api/v1/transactions/swap
func (h *TransactionHandler) Swap(c *gin.Context) {
	var input entities.SwapInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.txUsecase.Swap(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}
