package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/pkg/amount"
	"borderlesspay.backend/pkg/utils"
)

var errStubDown = errors.New("storage unavailable")

type walletRepoStub struct {
	items map[uuid.UUID]*entities.Wallet
	fail  bool
}

func newWalletRepoStub() *walletRepoStub {
	return &walletRepoStub{items: map[uuid.UUID]*entities.Wallet{}}
}

func (s *walletRepoStub) Create(_ context.Context, wallet *entities.Wallet) error {
	if s.fail {
		return errStubDown
	}
	if wallet.ID == uuid.Nil {
		wallet.ID = utils.GenerateUUIDv7()
	}
	wallet.Balance = amount.FormatUnits(wallet.BalanceUnits)
	cpy := *wallet
	s.items[wallet.ID] = &cpy
	return nil
}

func (s *walletRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Wallet, error) {
	if s.fail {
		return nil, errStubDown
	}
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *walletRepoStub) GetByUserID(_ context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	if s.fail {
		return nil, errStubDown
	}
	out := []*entities.Wallet{}
	for _, item := range s.items {
		if item.UserID == userID && item.IsActive {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *walletRepoStub) GetByAddress(_ context.Context, address string) (*entities.Wallet, error) {
	for _, item := range s.items {
		if item.Address == address {
			cpy := *item
			return &cpy, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *walletRepoStub) Update(_ context.Context, id uuid.UUID, input *entities.UpdateWalletInput) (*entities.Wallet, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	cpy := *item
	return &cpy, nil
}

func (s *walletRepoStub) Debit(_ context.Context, id uuid.UUID, units int64) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.BalanceUnits < units {
		return domainerrors.ErrInsufficientFunds
	}
	item.BalanceUnits -= units
	item.Balance = amount.FormatUnits(item.BalanceUnits)
	return nil
}

func (s *walletRepoStub) Credit(_ context.Context, id uuid.UUID, units int64) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.BalanceUnits += units
	item.Balance = amount.FormatUnits(item.BalanceUnits)
	return nil
}

type txRepoStub struct {
	items []*entities.Transaction
	fail  bool
}

func newTxRepoStub() *txRepoStub { return &txRepoStub{} }

func (s *txRepoStub) Create(_ context.Context, tx *entities.Transaction) error {
	if s.fail {
		return errStubDown
	}
	if tx.ID == uuid.Nil {
		tx.ID = utils.GenerateUUIDv7()
	}
	if tx.Metadata == "" {
		tx.Metadata = "{}"
	}
	cpy := *tx
	s.items = append(s.items, &cpy)
	return nil
}

func (s *txRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Transaction, error) {
	for _, item := range s.items {
		if item.ID == id {
			cpy := *item
			return &cpy, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *txRepoStub) GetByUserID(_ context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	if s.fail {
		return nil, errStubDown
	}
	out := []*entities.Transaction{}
	for i := len(s.items) - 1; i >= 0; i-- {
		item := s.items[i]
		if item.UserID != userID {
			continue
		}
		if filter.Status != "" && string(item.Status) != filter.Status {
			continue
		}
		if filter.Type != "" && string(item.Type) != filter.Type {
			continue
		}
		cpy := *item
		out = append(out, &cpy)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *txRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	for _, item := range s.items {
		if item.ID == id {
			if !entities.CanTransitionTransaction(item.Status, status) {
				return domainerrors.ErrInvalidTransition
			}
			item.Status = status
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

type invoiceRepoStub struct {
	items map[uuid.UUID]*entities.Invoice
	fail  bool
}

func newInvoiceRepoStub() *invoiceRepoStub {
	return &invoiceRepoStub{items: map[uuid.UUID]*entities.Invoice{}}
}

func (s *invoiceRepoStub) Create(_ context.Context, invoice *entities.Invoice) error {
	if s.fail {
		return errStubDown
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = utils.GenerateUUIDv7()
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = utils.GenerateInvoiceNumber()
	}
	cpy := *invoice
	s.items[invoice.ID] = &cpy
	return nil
}

func (s *invoiceRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Invoice, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *invoiceRepoStub) GetByUserID(_ context.Context, userID uuid.UUID) ([]*entities.Invoice, error) {
	if s.fail {
		return nil, errStubDown
	}
	out := []*entities.Invoice{}
	for _, item := range s.items {
		if item.UserID == userID {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	return out, nil
}

func (s *invoiceRepoStub) Update(_ context.Context, id uuid.UUID, input *entities.UpdateInvoiceInput) (*entities.Invoice, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if input.Status != nil {
		next := entities.InvoiceStatus(*input.Status)
		if !entities.ValidInvoiceStatus(*input.Status) {
			return nil, domainerrors.ErrInvalidInput
		}
		if !entities.CanTransitionInvoice(item.Status, next) {
			return nil, domainerrors.ErrInvalidTransition
		}
		item.Status = next
	}
	if input.ClientName != nil {
		item.ClientName = *input.ClientName
	}
	if input.Amount != nil {
		item.Amount = *input.Amount
	}
	cpy := *item
	return &cpy, nil
}

func (s *invoiceRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *invoiceRepoStub) GetOverdueCandidates(context.Context, time.Time, int) ([]*entities.Invoice, error) {
	return nil, nil
}

func (s *invoiceRepoStub) MarkOverdue(context.Context, []uuid.UUID) error { return nil }

type employeeRepoStub struct {
	items map[uuid.UUID]*entities.Employee
	fail  bool
}

func newEmployeeRepoStub() *employeeRepoStub {
	return &employeeRepoStub{items: map[uuid.UUID]*entities.Employee{}}
}

func (s *employeeRepoStub) Create(_ context.Context, employee *entities.Employee) error {
	if s.fail {
		return errStubDown
	}
	if employee.ID == uuid.Nil {
		employee.ID = utils.GenerateUUIDv7()
	}
	if employee.EmployeeNumber == "" {
		employee.EmployeeNumber = utils.GenerateEmployeeNumber()
	}
	cpy := *employee
	s.items[employee.ID] = &cpy
	return nil
}

func (s *employeeRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Employee, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *employeeRepoStub) GetByUserID(_ context.Context, userID uuid.UUID) ([]*entities.Employee, error) {
	if s.fail {
		return nil, errStubDown
	}
	out := []*entities.Employee{}
	for _, item := range s.items {
		if item.UserID == userID {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	return out, nil
}

func (s *employeeRepoStub) Update(_ context.Context, id uuid.UUID, input *entities.UpdateEmployeeInput) (*entities.Employee, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if input.FirstName != nil {
		item.FirstName = *input.FirstName
	}
	if input.Salary != nil {
		item.Salary = *input.Salary
	}
	if input.Status != nil {
		if !entities.ValidEmployeeStatus(*input.Status) {
			return nil, domainerrors.ErrInvalidInput
		}
		item.Status = entities.EmployeeStatus(*input.Status)
	}
	cpy := *item
	return &cpy, nil
}

func (s *employeeRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type userRepoStub struct {
	byID    map[uuid.UUID]*entities.User
	byEmail map[string]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{byID: map[uuid.UUID]*entities.User{}, byEmail: map[string]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	cpy := *user
	s.byID[user.ID] = &cpy
	s.byEmail[user.Email] = &cpy
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	item, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	item, ok := s.byEmail[email]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

type rateRepoStub struct {
	rate *entities.ExchangeRate
}

func (s *rateRepoStub) Create(_ context.Context, rate *entities.ExchangeRate) error {
	cpy := *rate
	s.rate = &cpy
	return nil
}

func (s *rateRepoStub) Latest(_ context.Context, fromCurrency, toCurrency string) (*entities.ExchangeRate, error) {
	if s.rate == nil || s.rate.FromCurrency != fromCurrency || s.rate.ToCurrency != toCurrency {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *s.rate
	return &cpy, nil
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func performJSON(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
