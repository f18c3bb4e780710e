package ledger

import (
	"context"
	"fmt"

	"github.com/hashgraph/hedera-sdk-go/v2"

	"borderlesspay.backend/internal/config"
)

// CreateTokenInput describes a custodial token to mint with the
// operator account as treasury.
type CreateTokenInput struct {
	Name          string
	Symbol        string
	Decimals      uint32
	InitialSupply uint64
}

// Client submits transactions to the Hedera network on behalf of the
// configured operator account. All amounts are in base units: tinybars
// for hbar, the token's own smallest unit for tokens.
type Client struct {
	sdk        *hedera.Client
	operatorID hedera.AccountID
}

// NewClient creates a network client for the configured network and
// operator credentials.
func NewClient(cfg config.HederaConfig) (*Client, error) {
	sdk, err := hedera.ClientForName(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("ledger network %q: %w", cfg.Network, err)
	}

	operatorID, err := hedera.AccountIDFromString(cfg.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("operator account id: %w", err)
	}
	operatorKey, err := hedera.PrivateKeyFromString(cfg.OperatorKey)
	if err != nil {
		return nil, fmt.Errorf("operator key: %w", err)
	}
	sdk.SetOperator(operatorID, operatorKey)

	return &Client{sdk: sdk, operatorID: operatorID}, nil
}

// Close releases the underlying network channels.
func (c *Client) Close() error {
	return c.sdk.Close()
}

// OperatorID returns the operator account id string.
func (c *Client) OperatorID() string {
	return c.operatorID.String()
}

// TransferHbar moves tinybars between two accounts and returns the
// network transaction id once consensus is reached.
func (c *Client) TransferHbar(ctx context.Context, fromAccount, toAccount string, tinybars int64, memo string) (string, error) {
	from, err := hedera.AccountIDFromString(fromAccount)
	if err != nil {
		return "", fmt.Errorf("from account: %w", err)
	}
	to, err := hedera.AccountIDFromString(toAccount)
	if err != nil {
		return "", fmt.Errorf("to account: %w", err)
	}

	tx := hedera.NewTransferTransaction().
		AddHbarTransfer(from, hedera.HbarFromTinybar(-tinybars)).
		AddHbarTransfer(to, hedera.HbarFromTinybar(tinybars))
	if memo != "" {
		tx.SetTransactionMemo(memo)
	}

	resp, err := tx.Execute(c.sdk)
	if err != nil {
		return "", fmt.Errorf("hbar transfer: %w", err)
	}
	if _, err := resp.GetReceipt(c.sdk); err != nil {
		return "", fmt.Errorf("hbar transfer receipt: %w", err)
	}
	return resp.TransactionID.String(), nil
}

// TransferToken moves token base units between two accounts.
func (c *Client) TransferToken(ctx context.Context, tokenID, fromAccount, toAccount string, units int64, memo string) (string, error) {
	token, err := hedera.TokenIDFromString(tokenID)
	if err != nil {
		return "", fmt.Errorf("token id: %w", err)
	}
	from, err := hedera.AccountIDFromString(fromAccount)
	if err != nil {
		return "", fmt.Errorf("from account: %w", err)
	}
	to, err := hedera.AccountIDFromString(toAccount)
	if err != nil {
		return "", fmt.Errorf("to account: %w", err)
	}

	tx := hedera.NewTransferTransaction().
		AddTokenTransfer(token, from, -units).
		AddTokenTransfer(token, to, units)
	if memo != "" {
		tx.SetTransactionMemo(memo)
	}

	resp, err := tx.Execute(c.sdk)
	if err != nil {
		return "", fmt.Errorf("token transfer: %w", err)
	}
	if _, err := resp.GetReceipt(c.sdk); err != nil {
		return "", fmt.Errorf("token transfer receipt: %w", err)
	}
	return resp.TransactionID.String(), nil
}

// TokenDecimals returns the declared decimals of a token.
func (c *Client) TokenDecimals(ctx context.Context, tokenID string) (uint32, error) {
	token, err := hedera.TokenIDFromString(tokenID)
	if err != nil {
		return 0, fmt.Errorf("token id: %w", err)
	}
	info, err := hedera.NewTokenInfoQuery().SetTokenID(token).Execute(c.sdk)
	if err != nil {
		return 0, fmt.Errorf("token info: %w", err)
	}
	return info.Decimals, nil
}

// CreateToken mints a new fungible token with the operator as treasury
// and returns its token id.
func (c *Client) CreateToken(ctx context.Context, input CreateTokenInput) (string, error) {
	resp, err := hedera.NewTokenCreateTransaction().
		SetTokenName(input.Name).
		SetTokenSymbol(input.Symbol).
		SetDecimals(uint(input.Decimals)).
		SetInitialSupply(input.InitialSupply).
		SetTreasuryAccountID(c.operatorID).
		Execute(c.sdk)
	if err != nil {
		return "", fmt.Errorf("token create: %w", err)
	}
	receipt, err := resp.GetReceipt(c.sdk)
	if err != nil {
		return "", fmt.Errorf("token create receipt: %w", err)
	}
	if receipt.TokenID == nil {
		return "", fmt.Errorf("token create: receipt carries no token id")
	}
	return receipt.TokenID.String(), nil
}
