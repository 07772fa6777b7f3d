// Package client talks to the back-office API. It pulls whole collections
// and runs the sell rollup locally, so a dashboard can be re-filtered
// without another round trip.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stockroom/backoffice/internal/domain/report"
	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned by calls that need a token when none is held
var ErrNotAuthenticated = errors.New("client: not logged in")

// APIError is a failure envelope returned by the server
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("client: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("client: %s (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// IsUnauthorized reports whether err is a rejected or expired token
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client is an authenticated API client. It is not safe to change the
// token concurrently with requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken starts the client with an existing access token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the client logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the server at baseURL (scheme and host, no /api)
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base url %q needs a scheme and host", baseURL)
	}
	c := &Client{
		baseURL:    u.String(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the access token currently held
func (c *Client) Token() string {
	return c.token
}

// SetToken replaces the access token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Session is what a successful login yields
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
}

// Expired reports whether the session token is past its expiry
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Login exchanges credentials for an access token and keeps it
func (c *Client) Login(ctx context.Context, login, password string) (*Session, error) {
	var res struct {
		AccessToken string    `json:"accessToken"`
		ExpiresAt   time.Time `json:"expiresAt"`
		User        struct {
			ID       string `json:"_id"`
			Username string `json:"username"`
			IsAdmin  bool   `json:"isAdmin"`
		} `json:"user"`
	}
	body := map[string]string{"login": login, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &res); err != nil {
		return nil, err
	}
	c.token = res.AccessToken
	c.logger.Debug("Logged in", zap.String("username", res.User.Username))
	return &Session{
		Token:     res.AccessToken,
		ExpiresAt: res.ExpiresAt,
		UserID:    res.User.ID,
		Username:  res.User.Username,
		IsAdmin:   res.User.IsAdmin,
	}, nil
}

// Logout revokes the held token and forgets it. The token is dropped even
// when the server rejects it.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.token = ""
	if err != nil && !IsUnauthorized(err) {
		return err
	}
	return nil
}

// Products fetches the whole product catalog
func (c *Client) Products(ctx context.Context) ([]report.ProductSnapshot, error) {
	var out []report.ProductSnapshot
	if err := c.list(ctx, "/api/products", &out); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return out, nil
}

// Sells fetches every sell of the tenant
func (c *Client) Sells(ctx context.Context) ([]report.SellLine, error) {
	var out []report.SellLine
	if err := c.list(ctx, "/api/sells", &out); err != nil {
		return nil, fmt.Errorf("load sells: %w", err)
	}
	return out, nil
}

// Purchases fetches every purchase of the tenant
func (c *Client) Purchases(ctx context.Context) ([]report.PurchaseLine, error) {
	var out []report.PurchaseLine
	if err := c.list(ctx, "/api/purchases", &out); err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}
	return out, nil
}

// CategorySummary is the server-computed summary of one category
type CategorySummary struct {
	ProductCount  int64         `json:"productCount"`
	MostPurchased *ProductCount `json:"mostPurchased"`
	MostSold      *ProductCount `json:"mostSold"`
	TopBuyers     []PartyTotal  `json:"topBuyers"`
	TopSellers    []PartyTotal  `json:"topSellers"`
	TotalSpent    float64       `json:"totalSpent"`
	TotalGained   float64       `json:"totalGained"`
	Profit        float64       `json:"profit"`
}

// ProductCount names a product and one of its counters
type ProductCount struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PartyTotal is a buyer or seller with the units they moved.
// Only one of the two totals is set.
type PartyTotal struct {
	ID             string `json:"_id"`
	TotalPurchased int64  `json:"totalPurchased,omitempty"`
	TotalSold      int64  `json:"totalSold,omitempty"`
}

// CategorySummary fetches the summary of a category
func (c *Client) CategorySummary(ctx context.Context, categoryID string) (*CategorySummary, error) {
	var out CategorySummary
	path := "/api/categories/" + url.PathEscape(categoryID) + "/summary"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// list fetches an unpaginated collection
func (c *Client) list(ctx context.Context, path string, out any) error {
	if c.token == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodGet, path, url.Values{"limit": {"0"}}, nil, out)
}

type envelope struct {
	Error   bool            `json:"error"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

// do sends one request and decodes the data member of the response envelope into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("client: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: failed to read response: %w", err)
	}
	c.logger.Debug("API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("client: failed to parse response: %w", err)
	}
	if env.Error || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("client: failed to decode %s: %w", path, err)
	}
	return nil
}
