package ledger

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// FallbackPriceUSD is served when the upstream feed is unreachable.
const FallbackPriceUSD = 0.05

// PriceClient fetches the hbar spot price from a public feed.
type PriceClient struct {
	http *resty.Client
	url  string
}

// NewPriceClient creates a price client for the given feed URL.
func NewPriceClient(url string) *PriceClient {
	return &PriceClient{
		http: resty.New().SetTimeout(5 * time.Second),
		url:  url,
	}
}

type priceResponse struct {
	HederaHashgraph struct {
		USD float64 `json:"usd"`
	} `json:"hedera-hashgraph"`
}

// PriceUSD returns the hbar price in USD and whether it came from the
// live feed. Any upstream failure degrades to the static fallback.
func (c *PriceClient) PriceUSD(ctx context.Context) (float64, bool) {
	var out priceResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           "hedera-hashgraph",
			"vs_currencies": "usd",
		}).
		SetResult(&out).
		Get(c.url)
	if err != nil || resp.IsError() || out.HederaHashgraph.USD <= 0 {
		return FallbackPriceUSD, false
	}
	return out.HederaHashgraph.USD, true
}
