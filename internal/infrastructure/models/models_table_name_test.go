package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "wallets", Wallet{}.TableName())
	assert.Equal(t, "transactions", Transaction{}.TableName())
	assert.Equal(t, "invoices", Invoice{}.TableName())
	assert.Equal(t, "employees", Employee{}.TableName())
	assert.Equal(t, "exchange_rates", ExchangeRate{}.TableName())
}
