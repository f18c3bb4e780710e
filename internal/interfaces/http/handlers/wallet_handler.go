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

type walletService interface {
	Create(ctx context.Context, input *entities.CreateWalletInput) (*entities.Wallet, error)
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateWalletInput) (*entities.Wallet, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// ListWallets lists active wallets for a user. A storage failure
// degrades to an empty list so the dashboard still renders.
// GET /api/v1/wallets?userId=
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid or missing userId"))
		return
	}

	wallets, err := h.walletUsecase.List(c.Request.Context(), userID)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("wallet listing failed, returning empty list")
		wallets = nil
	}
	if wallets == nil {
		wallets = []*entities.Wallet{}
	}

	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// CreateWallet creates a wallet
// POST /api/v1/wallets
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var input entities.CreateWalletInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	wallet, err := h.walletUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"wallet": wallet})
}

// GetWallet reads one wallet
// GET /api/v1/wallets/:id
func (h *WalletHandler) GetWallet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid wallet ID"))
		return
	}

	wallet, err := h.walletUsecase.Get(c.Request.Context(), id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// UpdateWallet patches a wallet's name or active flag
// PATCH /api/v1/wallets/:id
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid wallet ID"))
		return
	}

	var input entities.UpdateWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	wallet, err := h.walletUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}
