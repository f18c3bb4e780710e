package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenBalance is one token position on an account.
type TokenBalance struct {
	TokenID string `json:"tokenId"`
	Balance int64  `json:"balance"`
}

// AccountBalance is the mirror view of an account's holdings. Balance
// is in tinybars.
type AccountBalance struct {
	Account string         `json:"account"`
	Balance int64          `json:"balance"`
	Tokens  []TokenBalance `json:"tokens"`
}

// MirrorTransfer is one leg of a mirror transaction.
type MirrorTransfer struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// MirrorTransaction is a consensus-final transaction as reported by
// the mirror node.
type MirrorTransaction struct {
	TransactionID      string           `json:"transaction_id"`
	Name               string           `json:"name"`
	Result             string           `json:"result"`
	ConsensusTimestamp string           `json:"consensus_timestamp"`
	MemoBase64         string           `json:"memo_base64"`
	Transfers          []MirrorTransfer `json:"transfers"`
}

type mirrorAccountResponse struct {
	Account string `json:"account"`
	Balance struct {
		Balance int64 `json:"balance"`
		Tokens  []struct {
			TokenID string `json:"token_id"`
			Balance int64  `json:"balance"`
		} `json:"tokens"`
	} `json:"balance"`
}

type mirrorTransactionsResponse struct {
	Transactions []MirrorTransaction `json:"transactions"`
}

// MirrorClient reads account and transaction state from a Hedera
// mirror node's public REST API.
type MirrorClient struct {
	http *resty.Client
}

// NewMirrorClient creates a mirror client for the given base URL.
func NewMirrorClient(baseURL string) *MirrorClient {
	return &MirrorClient{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(10 * time.Second),
	}
}

// AccountBalance fetches the hbar and token balances of an account.
func (c *MirrorClient) AccountBalance(ctx context.Context, accountID string) (*AccountBalance, error) {
	var out mirrorAccountResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v1/accounts/" + accountID)
	if err != nil {
		return nil, fmt.Errorf("mirror account lookup: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mirror account lookup: status %d", resp.StatusCode())
	}

	balance := &AccountBalance{
		Account: out.Account,
		Balance: out.Balance.Balance,
		Tokens:  make([]TokenBalance, 0, len(out.Balance.Tokens)),
	}
	for _, t := range out.Balance.Tokens {
		balance.Tokens = append(balance.Tokens, TokenBalance{TokenID: t.TokenID, Balance: t.Balance})
	}
	return balance, nil
}

// Transactions lists the most recent transactions touching an account.
func (c *MirrorClient) Transactions(ctx context.Context, accountID string, limit int) ([]MirrorTransaction, error) {
	if limit <= 0 {
		limit = 25
	}
	var out mirrorTransactionsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"account.id": accountID,
			"limit":      strconv.Itoa(limit),
			"order":      "desc",
		}).
		SetResult(&out).
		Get("/api/v1/transactions")
	if err != nil {
		return nil, fmt.Errorf("mirror transaction list: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mirror transaction list: status %d", resp.StatusCode())
	}
	return out.Transactions, nil
}

// TransactionByID fetches one transaction. SDK-form ids
// (0.0.x@secs.nanos) are rewritten to the mirror path form first.
func (c *MirrorClient) TransactionByID(ctx context.Context, id string) ([]MirrorTransaction, error) {
	var out mirrorTransactionsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v1/transactions/" + FormatTransactionID(id))
	if err != nil {
		return nil, fmt.Errorf("mirror transaction lookup: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mirror transaction lookup: status %d", resp.StatusCode())
	}
	return out.Transactions, nil
}

// FormatTransactionID rewrites an SDK transaction id
// (0.0.x@secs.nanos) into the mirror REST form (0.0.x-secs-nanos).
// Only the @ and the last dot change; the dots inside the account id
// stay. Ids already in mirror form pass through unchanged.
func FormatTransactionID(id string) string {
	if !strings.Contains(id, "@") {
		return id
	}
	id = strings.Replace(id, "@", "-", 1)
	if i := strings.LastIndex(id, "."); i >= 0 {
		id = id[:i] + "-" + id[i+1:]
	}
	return id
}
