package rates

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// latestResponse mirrors the ExchangeRate-API v6 "latest" payload.
// {"result":"success","conversion_rates":{"PLN":4.02,...}}
// {"result":"error","error-type":"invalid-key"}
type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// Client queries ExchangeRate-API for live conversion rate tables.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

// NewClient builds a rate-service client. The timeout bounds the whole
// round trip; the lookup is never retried.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	httpClient := resty.New().SetTimeout(timeout)

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Latest returns the target-currency → rate table for the given base
// currency. Any transport failure, non-success status, or explicit error
// indicator in the body is returned as an error for the caller to absorb.
func (c *Client) Latest(ctx context.Context, base string) (map[string]float64, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("rates: EXCHANGERATE_API_KEY is not set")
	}

	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, strings.ToUpper(base))

	var body latestResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&body).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("rates: requesting latest rates for %s: %w", base, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("rates: unexpected status %d for %s", resp.StatusCode(), base)
	}

	if body.Result != "success" {
		errType := body.ErrorType
		if errType == "" {
			errType = "unknown error"
		}
		return nil, fmt.Errorf("rates: service error for %s: %s", base, errType)
	}

	if len(body.ConversionRates) == 0 {
		return nil, fmt.Errorf("rates: empty rate table for %s", base)
	}

	return body.ConversionRates, nil
}
