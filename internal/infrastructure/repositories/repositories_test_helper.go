package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"borderlesspay.backend/internal/domain/entities"
	"borderlesspay.backend/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		business_name TEXT NOT NULL,
		country TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL,
		kind TEXT NOT NULL,
		balance_units INTEGER NOT NULL DEFAULT 0,
		address TEXT UNIQUE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		amount_units INTEGER NOT NULL,
		currency TEXT NOT NULL,
		from_address TEXT,
		to_address TEXT,
		fee_units INTEGER,
		note TEXT,
		hash TEXT UNIQUE,
		metadata TEXT DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createInvoiceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE invoices (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		invoice_number TEXT UNIQUE NOT NULL,
		client_name TEXT NOT NULL,
		description TEXT,
		amount_units INTEGER NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		due_date DATETIME,
		paid_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createEmployeeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE employees (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		employee_number TEXT UNIQUE NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		position TEXT,
		department TEXT,
		salary_units INTEGER NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		joined_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createExchangeRateTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE exchange_rates (
		id TEXT PRIMARY KEY,
		from_currency TEXT NOT NULL,
		to_currency TEXT NOT NULL,
		rate REAL NOT NULL,
		created_at DATETIME
	);`)
}

func seedWallet(t *testing.T, repo *WalletRepository, userID uuid.UUID, balanceUnits int64) *entities.Wallet {
	t.Helper()
	w := &entities.Wallet{
		ID:           utils.GenerateUUIDv7(),
		UserID:       userID,
		Name:         "Main USD",
		Symbol:       "USDC",
		Kind:         entities.WalletKindCustodialStablecoin,
		BalanceUnits: balanceUnits,
		Address:      "0.0." + uuid.NewString()[:8],
	}
	require.NoError(t, repo.Create(context.Background(), w))
	return w
}
