package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// DefaultBaseURL is the Alpha Vantage query endpoint
const DefaultBaseURL = "https://www.alphavantage.co/query"

// ErrNoQuote is returned when the provider answers without a price for the symbol
var ErrNoQuote = errors.New("no quote available")

// AlphaVantage implements domain.PriceFeed using the GLOBAL_QUOTE function
type AlphaVantage struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

var _ domain.PriceFeed = (*AlphaVantage)(nil)

// NewAlphaVantage creates a new Alpha Vantage price feed
// An empty baseURL selects DefaultBaseURL
func NewAlphaVantage(baseURL, apiKey string, timeout time.Duration) *AlphaVantage {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AlphaVantage{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

// globalQuote is the response structure of the GLOBAL_QUOTE function.
// Throttled or unknown-symbol answers carry "Note", "Information" or
// "Error Message" instead of a quote.
type globalQuote struct {
	Quote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// LatestPrice fetches the most recent price of symbol
func (a *AlphaVantage) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if a.APIKey == "" {
		return decimal.Zero, errors.New("alphavantage: api key not set")
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", domain.NormalizeSymbol(symbol))
	params.Set("apikey", a.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var quote globalQuote
	if err := json.Unmarshal(body, &quote); err != nil {
		return decimal.Zero, fmt.Errorf("alphavantage decode: %w", err)
	}

	switch {
	case quote.ErrorMessage != "":
		return decimal.Zero, fmt.Errorf("alphavantage api error: %s", quote.ErrorMessage)
	case quote.Note != "":
		return decimal.Zero, fmt.Errorf("alphavantage throttled: %s", quote.Note)
	case quote.Information != "":
		return decimal.Zero, fmt.Errorf("alphavantage: %s", quote.Information)
	case quote.Quote.Price == "":
		return decimal.Zero, fmt.Errorf("alphavantage %s: %w", symbol, ErrNoQuote)
	}

	price, err := decimal.NewFromString(quote.Quote.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("alphavantage: parse price %q: %w", quote.Quote.Price, err)
	}
	return price, nil
}
