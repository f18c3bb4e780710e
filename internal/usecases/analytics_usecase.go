package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
	"borderlesspay.backend/internal/domain/repositories"
	"borderlesspay.backend/pkg/amount"
)

// AnalyticsOverview is the cross-entity dashboard summary for a user.
type AnalyticsOverview struct {
	WalletCount      int               `json:"walletCount"`
	BalanceBySymbol  map[string]string `json:"balanceBySymbol"`
	TransactionCount int               `json:"transactionCount"`
	PendingCount     int               `json:"pendingCount"`
	CompletedCount   int               `json:"completedCount"`
	MonthlyVolume    string            `json:"monthlyVolume"`
	Invoices         *InvoiceStats     `json:"invoices"`
	EmployeeCount    int               `json:"employeeCount"`
	ActiveEmployees  int               `json:"activeEmployees"`
	MonthlyPayroll   string            `json:"monthlyPayroll"`
}

// AnalyticsUsecase reduces a user's full data set into dashboard
// figures. Full fetch then in-memory reduce on every read.
type AnalyticsUsecase struct {
	walletRepo   repositories.WalletRepository
	txRepo       repositories.TransactionRepository
	employeeRepo repositories.EmployeeRepository
	invoices     *InvoiceUsecase
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(
	walletRepo repositories.WalletRepository,
	txRepo repositories.TransactionRepository,
	employeeRepo repositories.EmployeeRepository,
	invoiceUsecase *InvoiceUsecase,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		walletRepo:   walletRepo,
		txRepo:       txRepo,
		employeeRepo: employeeRepo,
		invoices:     invoiceUsecase,
	}
}

// Overview computes the dashboard summary for a user.
func (u *AnalyticsUsecase) Overview(ctx context.Context, userID uuid.UUID) (*AnalyticsOverview, error) {
	wallets, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactions, err := u.txRepo.GetByUserID(ctx, userID, entities.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	employees, err := u.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	invoiceStats, err := u.invoices.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &AnalyticsOverview{
		WalletCount:     len(wallets),
		BalanceBySymbol: make(map[string]string),
		Invoices:        invoiceStats,
		EmployeeCount:   len(employees),
	}

	balanceUnits := make(map[string]int64)
	for _, w := range wallets {
		balanceUnits[w.Symbol] += w.BalanceUnits
	}
	for symbol, units := range balanceUnits {
		overview.BalanceBySymbol[symbol] = amount.FormatUnits(units)
	}

	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day()).Truncate(24 * time.Hour)
	var volumeUnits int64
	overview.TransactionCount = len(transactions)
	for _, tx := range transactions {
		switch tx.Status {
		case entities.TransactionStatusPending:
			overview.PendingCount++
		case entities.TransactionStatusCompleted:
			overview.CompletedCount++
		}
		if tx.CreatedAt.Before(monthStart) {
			continue
		}
		if units, err := amount.ParseUnits(tx.Amount); err == nil {
			volumeUnits += units
		}
	}
	overview.MonthlyVolume = amount.FormatUnits(volumeUnits)

	var payrollUnits int64
	for _, e := range employees {
		if e.Status != entities.EmployeeStatusActive {
			continue
		}
		overview.ActiveEmployees++
		if units, err := amount.ParseUnits(e.Salary); err == nil {
			payrollUnits += units
		}
	}
	overview.MonthlyPayroll = amount.FormatUnits(payrollUnits)

	return overview, nil
}
