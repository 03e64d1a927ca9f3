package quote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeed(t *testing.T, status int, body string) *AlphaVantage {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "demo", r.URL.Query().Get("apikey"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewAlphaVantage(srv.URL, "demo", time.Second)
}

func TestLatestPrice_ParsesGlobalQuote(t *testing.T) {
	feed := newFeed(t, http.StatusOK, `{"Global Quote": {"01. symbol": "AAPL", "05. price": "189.8400"}}`)

	price, err := feed.LatestPrice(context.Background(), " aapl ")

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("189.84").Equal(price))
}

func TestLatestPrice_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectedErr string
	}{
		{name: "Empty Quote", status: http.StatusOK, body: `{"Global Quote": {}}`, expectedErr: "no quote available"},
		{name: "Throttled", status: http.StatusOK, body: `{"Note": "Thank you for using Alpha Vantage!"}`, expectedErr: "throttled"},
		{name: "Information", status: http.StatusOK, body: `{"Information": "premium endpoint"}`, expectedErr: "premium endpoint"},
		{name: "Unknown Symbol", status: http.StatusOK, body: `{"Error Message": "Invalid API call."}`, expectedErr: "api error"},
		{name: "Bad Status", status: http.StatusBadGateway, body: `oops`, expectedErr: "status 502"},
		{name: "Bad JSON", status: http.StatusOK, body: `{`, expectedErr: "decode"},
		{name: "Bad Price", status: http.StatusOK, body: `{"Global Quote": {"05. price": "n/a"}}`, expectedErr: "parse price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := newFeed(t, tt.status, tt.body)

			_, err := feed.LatestPrice(context.Background(), "AAPL")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestLatestPrice_EmptyQuoteIsErrNoQuote(t *testing.T) {
	feed := newFeed(t, http.StatusOK, `{"Global Quote": {}}`)

	_, err := feed.LatestPrice(context.Background(), "AAPL")

	assert.True(t, errors.Is(err, ErrNoQuote))
}

func TestLatestPrice_RequiresAPIKey(t *testing.T) {
	feed := NewAlphaVantage("", "", 0)

	_, err := feed.LatestPrice(context.Background(), "AAPL")

	assert.EqualError(t, err, "alphavantage: api key not set")
	assert.Equal(t, DefaultBaseURL, feed.BaseURL)
}
