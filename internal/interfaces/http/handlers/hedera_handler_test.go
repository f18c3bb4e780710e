package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"borderlesspay.backend/internal/infrastructure/ledger"
	"borderlesspay.backend/internal/usecases"
)

type ledgerStub struct {
	hbarCalls  int
	tokenCalls int
	failWith   error
	decimals   uint32
	lastUnits  int64
}

func (s *ledgerStub) TransferHbar(_ context.Context, _, _ string, tinybars int64, _ string) (string, error) {
	s.hbarCalls++
	s.lastUnits = tinybars
	if s.failWith != nil {
		return "", s.failWith
	}
	return "0.0.7@1700000000.000000001", nil
}

func (s *ledgerStub) TransferToken(_ context.Context, _, _, _ string, units int64, _ string) (string, error) {
	s.tokenCalls++
	s.lastUnits = units
	if s.failWith != nil {
		return "", s.failWith
	}
	return "0.0.7@1700000000.000000002", nil
}

func (s *ledgerStub) TokenDecimals(context.Context, string) (uint32, error) {
	return s.decimals, nil
}

func (s *ledgerStub) CreateToken(_ context.Context, input ledger.CreateTokenInput) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	return "0.0.9999", nil
}

func newHederaRouter(stub *ledgerStub, txRepo *txRepoStub, mirrorURL, priceURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := usecases.NewTransferUsecase(stub, txRepo)
	h := &HederaHandler{
		transferUsecase: uc,
		mirror:          ledger.NewMirrorClient(mirrorURL),
		price:           ledger.NewPriceClient(priceURL),
	}
	r := gin.New()
	r.GET("/hedera/balance", h.Balance)
	r.POST("/hedera/transfer", h.Transfer)
	r.GET("/hedera/transactions", h.Transactions)
	r.GET("/hedera/transaction/:id", h.Transaction)
	r.GET("/hedera/price", h.Price)
	r.POST("/hedera/create-token", h.CreateToken)
	return r
}

func TestHederaHandler_Balance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/api/v1/accounts/0.0.1001" {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"account":"0.0.1001","balance":{"balance":5000000000,"tokens":[{"token_id":"0.0.2002","balance":750}]}}`))
	}))
	defer server.Close()

	r := newHederaRouter(&ledgerStub{}, newTxRepoStub(), server.URL, server.URL)

	w := performJSON(r, http.MethodGet, "/hedera/balance?accountId=0.0.1001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Balance ledger.AccountBalance `json:"balance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal balance: %v", err)
	}
	if got.Balance.Balance != 5_000_000_000 || len(got.Balance.Tokens) != 1 {
		t.Fatalf("unexpected balance: %+v", got.Balance)
	}

	w = performJSON(r, http.MethodGet, "/hedera/balance", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without accountId, got %d", w.Code)
	}
}

func TestHederaHandler_TransferNative(t *testing.T) {
	stub := &ledgerStub{}
	txRepo := newTxRepoStub()
	r := newHederaRouter(stub, txRepo, "http://127.0.0.1:1", "http://127.0.0.1:1")
	userID := uuid.New()

	body := []byte(`{"fromAccountId":"0.0.1001","toAccountId":"0.0.2002","amount":"1.5","userId":"` + userID.String() + `","record":true}`)
	w := performJSON(r, http.MethodPost, "/hedera/transfer", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if stub.hbarCalls != 1 || stub.lastUnits != 150_000_000 {
		t.Fatalf("expected one hbar transfer of 1.5, got calls=%d units=%d", stub.hbarCalls, stub.lastUnits)
	}
	if len(txRepo.items) != 1 {
		t.Fatalf("expected audit row, got %d", len(txRepo.items))
	}
}

func TestHederaHandler_TransferRecordFlagOff(t *testing.T) {
	stub := &ledgerStub{}
	txRepo := newTxRepoStub()
	r := newHederaRouter(stub, txRepo, "http://127.0.0.1:1", "http://127.0.0.1:1")

	body := []byte(`{"fromAccountId":"0.0.1001","toAccountId":"0.0.2002","amount":"1.5"}`)
	w := performJSON(r, http.MethodPost, "/hedera/transfer", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if len(txRepo.items) != 0 {
		t.Fatalf("expected no audit row without record flag, got %d", len(txRepo.items))
	}
}

func TestHederaHandler_TransferToken(t *testing.T) {
	stub := &ledgerStub{decimals: 2}
	r := newHederaRouter(stub, newTxRepoStub(), "http://127.0.0.1:1", "http://127.0.0.1:1")

	body := []byte(`{"fromAccountId":"0.0.1001","toAccountId":"0.0.2002","amount":"3.25","tokenId":"0.0.5005"}`)
	w := performJSON(r, http.MethodPost, "/hedera/transfer", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if stub.tokenCalls != 1 || stub.lastUnits != 325 {
		t.Fatalf("expected token transfer of 325 units, got calls=%d units=%d", stub.tokenCalls, stub.lastUnits)
	}
}

func TestHederaHandler_TransferErrors(t *testing.T) {
	stub := &ledgerStub{failWith: errors.New("INSUFFICIENT_PAYER_BALANCE")}
	r := newHederaRouter(stub, newTxRepoStub(), "http://127.0.0.1:1", "http://127.0.0.1:1")

	body := []byte(`{"fromAccountId":"0.0.1001","toAccountId":"0.0.2002","amount":"1"}`)
	w := performJSON(r, http.MethodPost, "/hedera/transfer", body)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "INSUFFICIENT_PAYER_BALANCE") {
		t.Fatalf("expected ledger message passthrough, got %s", w.Body.String())
	}

	w = performJSON(r, http.MethodPost, "/hedera/transfer", []byte(`{"toAccountId":"0.0.2002","amount":"1"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing sender, got %d", w.Code)
	}
}

func TestHederaHandler_Transactions(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotQuery = req.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactions":[{"transaction_id":"0.0.1001-1700000000-000000001","name":"CRYPTOTRANSFER","result":"SUCCESS"}]}`))
	}))
	defer server.Close()

	r := newHederaRouter(&ledgerStub{}, newTxRepoStub(), server.URL, server.URL)

	w := performJSON(r, http.MethodGet, "/hedera/transactions?accountId=0.0.1001&limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if gotPath != "/api/v1/transactions" {
		t.Fatalf("unexpected mirror path %q", gotPath)
	}
	if !strings.Contains(gotQuery, "account.id=0.0.1001") || !strings.Contains(gotQuery, "limit=5") {
		t.Fatalf("unexpected mirror query %q", gotQuery)
	}

	w = performJSON(r, http.MethodGet, "/hedera/transactions", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without accountId, got %d", w.Code)
	}
}

func TestHederaHandler_TransactionByID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactions":[{"transaction_id":"0.0.4826582-1761927693-915611221","result":"SUCCESS"}]}`))
	}))
	defer server.Close()

	r := newHederaRouter(&ledgerStub{}, newTxRepoStub(), server.URL, server.URL)

	// SDK form arrives URL-encoded and is reformatted for the mirror path
	w := performJSON(r, http.MethodGet, "/hedera/transaction/0.0.4826582%401761927693.915611221", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if gotPath != "/api/v1/transactions/0.0.4826582-1761927693-915611221" {
		t.Fatalf("unexpected mirror path %q", gotPath)
	}
}

func TestHederaHandler_Price(t *testing.T) {
	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hedera-hashgraph":{"usd":0.123}}`))
	}))
	defer live.Close()

	r := newHederaRouter(&ledgerStub{}, newTxRepoStub(), live.URL, live.URL)
	w := performJSON(r, http.MethodGet, "/hedera/price", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got struct {
		PriceUSD float64 `json:"priceUsd"`
		Source   string  `json:"source"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal price: %v", err)
	}
	if got.PriceUSD != 0.123 || got.Source != "live" {
		t.Fatalf("unexpected price response: %+v", got)
	}

	// unreachable feed falls back to the static price
	r = newHederaRouter(&ledgerStub{}, newTxRepoStub(), live.URL, "http://127.0.0.1:1")
	w = performJSON(r, http.MethodGet, "/hedera/price", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on fallback, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal fallback price: %v", err)
	}
	if got.PriceUSD != ledger.FallbackPriceUSD || got.Source != "fallback" {
		t.Fatalf("unexpected fallback response: %+v", got)
	}
}

func TestHederaHandler_CreateToken(t *testing.T) {
	r := newHederaRouter(&ledgerStub{}, newTxRepoStub(), "http://127.0.0.1:1", "http://127.0.0.1:1")

	body := []byte(`{"name":"Acme Naira","symbol":"aNGN","decimals":2,"initialSupply":1000000}`)
	w := performJSON(r, http.MethodPost, "/hedera/create-token", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "0.0.9999") {
		t.Fatalf("expected token id, got %s", w.Body.String())
	}

	w = performJSON(r, http.MethodPost, "/hedera/create-token", []byte(`{"symbol":"aNGN"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}
}
