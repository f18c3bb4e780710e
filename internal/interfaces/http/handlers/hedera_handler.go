package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/infrastructure/ledger"
	"borderlesspay.backend/internal/interfaces/http/response"
	"borderlesspay.backend/internal/usecases"
)

type mirrorService interface {
	AccountBalance(ctx context.Context, accountID string) (*ledger.AccountBalance, error)
	Transactions(ctx context.Context, accountID string, limit int) ([]ledger.MirrorTransaction, error)
	TransactionByID(ctx context.Context, id string) ([]ledger.MirrorTransaction, error)
}

type priceService interface {
	PriceUSD(ctx context.Context) (float64, bool)
}

type transferService interface {
	Dispatch(ctx context.Context, input *usecases.TransferInput) (*usecases.TransferResult, error)
	CreateToken(ctx context.Context, input *usecases.CreateTokenInput) (string, error)
}

// HederaHandler proxies ledger and mirror node endpoints
type HederaHandler struct {
	transferUsecase transferService
	mirror          mirrorService
	price           priceService
}

// NewHederaHandler creates a new hedera handler
func NewHederaHandler(transferUsecase *usecases.TransferUsecase, mirror *ledger.MirrorClient, price *ledger.PriceClient) *HederaHandler {
	return &HederaHandler{transferUsecase: transferUsecase, mirror: mirror, price: price}
}

// Balance proxies native and token balances from the mirror node
// GET /api/v1/hedera/balance?accountId=
func (h *HederaHandler) Balance(c *gin.Context) {
	accountID := c.Query("accountId")
	if accountID == "" {
		response.Error(c, domainerrors.BadRequest("Missing accountId"))
		return
	}

	balance, err := h.mirror.AccountBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, domainerrors.NewLedgerError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"balance": balance})
}

// Transfer dispatches a native or token transfer on the ledger
// POST /api/v1/hedera/transfer
func (h *HederaHandler) Transfer(c *gin.Context) {
	var input usecases.TransferInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.transferUsecase.Dispatch(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// Transactions proxies an account's transaction history
// GET /api/v1/hedera/transactions?accountId=&limit=
func (h *HederaHandler) Transactions(c *gin.Context) {
	accountID := c.Query("accountId")
	if accountID == "" {
		response.Error(c, domainerrors.BadRequest("Missing accountId"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, domainerrors.BadRequest("Invalid limit"))
			return
		}
		limit = parsed
	}

	transactions, err := h.mirror.Transactions(c.Request.Context(), accountID, limit)
	if err != nil {
		response.Error(c, domainerrors.NewLedgerError(err))
		return
	}
	if transactions == nil {
		transactions = []ledger.MirrorTransaction{}
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": transactions})
}

// Transaction proxies a single-transaction lookup. The id arrives in
// SDK form and is reformatted to the mirror node's path form.
// GET /api/v1/hedera/transaction/:id
func (h *HederaHandler) Transaction(c *gin.Context) {
	id := c.Param("id")
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}
	if id == "" {
		response.Error(c, domainerrors.BadRequest("Missing transaction id"))
		return
	}

	transactions, err := h.mirror.TransactionByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, domainerrors.NewLedgerError(err))
		return
	}
	if transactions == nil {
		transactions = []ledger.MirrorTransaction{}
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": transactions})
}

// Price returns the native token USD price, falling back to a static
// value when the feed is unreachable
// GET /api/v1/hedera/price
func (h *HederaHandler) Price(c *gin.Context) {
	priceUSD, live := h.price.PriceUSD(c.Request.Context())
	source := "live"
	if !live {
		source = "fallback"
	}

	response.Success(c, http.StatusOK, gin.H{
		"priceUsd": priceUSD,
		"source":   source,
	})
}

// CreateToken creates a custodial token with the operator as treasury
// POST /api/v1/hedera/create-token
func (h *HederaHandler) CreateToken(c *gin.Context) {
	var input usecases.CreateTokenInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tokenID, err := h.transferUsecase.CreateToken(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"tokenId": tokenID})
}
