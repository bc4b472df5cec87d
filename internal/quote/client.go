package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

// Client looks up current prices from an Alpha Vantage style quote
// endpoint. Every transport or parsing failure collapses to
// domain.ErrSymbolNotFound: the caller only cares whether a usable
// quote came back.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

func (c *Client) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing quote provider URL: %w", err)
	}

	baseURL = baseURL.JoinPath("query")
	query := baseURL.Query()
	query.Set("function", "GLOBAL_QUOTE")
	query.Set("symbol", symbol)
	query.Set("apikey", c.apiKey)
	baseURL.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building quote request: %w", err)
	}

	response, err := c.client.Do(request)
	if err != nil {
		logger.Log.Warn("error fetching quote", logger.String("symbol", symbol), logger.Error(err))
		return nil, domain.ErrSymbolNotFound
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			logger.Log.Error("error closing response body", logger.Error(err))
			return
		}
	}(response.Body)

	if response.StatusCode != http.StatusOK {
		logger.Log.Warn("unexpected quote provider status",
			logger.String("symbol", symbol),
			logger.Int64("status", int64(response.StatusCode)),
		)
		return nil, domain.ErrSymbolNotFound
	}

	var result globalQuoteResponse
	err = json.NewDecoder(response.Body).Decode(&result)
	if err != nil {
		logger.Log.Warn("error decoding quote response", logger.String("symbol", symbol), logger.Error(err))
		return nil, domain.ErrSymbolNotFound
	}

	if result.GlobalQuote.Price == "" {
		return nil, domain.ErrSymbolNotFound
	}

	price, err := decimal.NewFromString(result.GlobalQuote.Price)
	if err != nil || !price.IsPositive() {
		logger.Log.Warn("unusable quote price",
			logger.String("symbol", symbol),
			logger.String("price", result.GlobalQuote.Price),
		)
		return nil, domain.ErrSymbolNotFound
	}

	canonical := result.GlobalQuote.Symbol
	if canonical == "" {
		canonical = strings.ToUpper(symbol)
	}

	return &domain.Quote{Symbol: canonical, Price: price}, nil
}
