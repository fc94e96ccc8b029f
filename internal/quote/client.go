package quote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

// SourceError represents an error response from the quote source.
type SourceError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("quote source error %d: %s", e.StatusCode, e.Message)
}

// Client fetches daily chart data from the quote source REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a quote source client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// History fetches the daily series for symbol over the given window and
// normalizes it to ascending calendar-dated closes.
//
// A 404 from the source means the symbol has nothing quotable in the
// window; that is reported as an empty series so callers never have to
// match on upstream fault types.
func (c *Client) History(ctx context.Context, symbol string, w model.FetchWindow) ([]model.QuoteRow, error) {
	if w.Kind == model.WindowRange && w.Start.After(w.End) {
		// An inverted range has no trading days; asking the source would
		// only earn an invalid-range rejection.
		c.logger.Debug("empty window, nothing to fetch", "symbol", symbol)
		return nil, nil
	}

	query := url.Values{}
	query.Set("interval", "1d")

	switch w.Kind {
	case model.WindowRange:
		query.Set("period1", strconv.FormatInt(w.Start.Unix(), 10))
		// period2 is exclusive, push it one day past the requested end
		query.Set("period2", strconv.FormatInt(w.End.AddDate(0, 0, 1).Unix(), 10))
	case model.WindowPeriod:
		query.Set("range", w.Period)
	case model.WindowFullHistory:
		query.Set("range", "max")
	}

	body, err := c.doRequest(ctx, symbol, query)
	if err != nil {
		srcErr, ok := err.(*SourceError)
		if ok && srcErr.StatusCode == http.StatusNotFound {
			c.logger.Debug("no data for window", "symbol", symbol)
			return nil, nil
		}
		return nil, err
	}

	rows, err := parseChart(body, w)
	if err != nil {
		return nil, fmt.Errorf("parse chart for %s: %w", symbol, err)
	}

	return rows, nil
}

// doRequest performs a single GET against the chart endpoint.
func (c *Client) doRequest(ctx context.Context, symbol string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + "/" + url.PathEscape(symbol)
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pricesync/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &SourceError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}
