// Package api is the outbound client for the SmartFinance backend.
//
// Every call is a single HTTP round trip: no retries, no backoff, no
// response caching. Outcomes are surfaced to the caller, who decides
// whether to display, ignore or log them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smartfinance/internal/core"
)

// Client wraps calls to the backend API, attaching the bearer
// credential supplied per call as an Authorization header.
type Client struct {
	baseURL string
	http    *http.Client
}

// TokenResponse is the payload of successful login and register calls.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TransactionInput carries the fields for create and update calls.
type TransactionInput struct {
	Amount      core.Money `json:"amount"`
	Date        core.Date  `json:"date"`
	Description string     `json:"description,omitempty"`
	CategoryID  int64      `json:"category_id"`
}

// New returns a client for the backend at baseURL (e.g.
// "http://localhost:8000/api"). The timeout bounds each round trip.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Register creates an account. Credentials travel as JSON.
func (c *Client) Register(ctx context.Context, username, email, password string) (TokenResponse, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, "application/json", bytes.NewReader(body), &out)
	return out, err
}

// Login exchanges credentials for a bearer token. The backend expects
// form-encoded fields, with the email submitted as "username"; that is
// a backend contract detail, not a client convention.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &out)
	return out, err
}

// CurrentUser resolves the stored credential into the user's profile.
func (c *Client) CurrentUser(ctx context.Context, token string) (core.Identity, error) {
	var out core.Identity
	err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, "", nil, &out)
	return out, err
}

// Summary fetches the aggregate income/expense/balance figures.
func (c *Client) Summary(ctx context.Context, token string) (core.Summary, error) {
	var out core.Summary
	err := c.do(ctx, http.MethodGet, "/dashboard/summary", token, nil, "", nil, &out)
	return out, err
}

// ExpenseChart fetches per-category expense totals for the breakdown.
func (c *Client) ExpenseChart(ctx context.Context, token string) ([]core.ChartItem, error) {
	var out []core.ChartItem
	err := c.do(ctx, http.MethodGet, "/dashboard/chart", token, nil, "", nil, &out)
	return out, err
}

// Transactions lists transactions, bounded inclusively by the filter.
// Blank bounds are left out of the query entirely.
func (c *Client) Transactions(ctx context.Context, token string, filter core.DateFilter) ([]core.Transaction, error) {
	q := url.Values{}
	if filter.Start != "" {
		q.Set("start_date", filter.Start)
	}
	if filter.End != "" {
		q.Set("end_date", filter.End)
	}
	var out []core.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", token, q, "", nil, &out)
	return out, err
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, token string, in TransactionInput) (core.Transaction, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("encode transaction: %w", err)
	}
	var out core.Transaction
	err = c.do(ctx, http.MethodPost, "/transactions", token, nil, "application/json", bytes.NewReader(body), &out)
	return out, err
}

// UpdateTransaction replaces the fields of an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, token string, id int64, in TransactionInput) (core.Transaction, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("encode transaction: %w", err)
	}
	var out core.Transaction
	err = c.do(ctx, http.MethodPut, "/transactions/"+strconv.FormatInt(id, 10), token, nil, "application/json", bytes.NewReader(body), &out)
	return out, err
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+strconv.FormatInt(id, 10), token, nil, "", nil, nil)
}

// Categories lists every category regardless of type.
func (c *Client) Categories(ctx context.Context, token string) ([]core.Category, error) {
	var out []core.Category
	err := c.do(ctx, http.MethodGet, "/categories/", token, nil, "", nil, &out)
	return out, err
}

// CategoriesByType lists only income or only expense categories.
func (c *Client) CategoriesByType(ctx context.Context, token string, t core.CategoryType) ([]core.Category, error) {
	var out []core.Category
	err := c.do(ctx, http.MethodGet, "/categories/"+string(t), token, nil, "", nil, &out)
	return out, err
}

// do performs one round trip and decodes the response into out when
// non-nil. Non-2xx responses become *Error values.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
