package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the storefront API surface consumed by the action layer.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	ListProducts(ctx context.Context, page, perPage int) (ProductPage, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	CreateReview(ctx context.Context, token, productID string, review ReviewInput) error
	Login(ctx context.Context, email, password string) (UserInfo, error)
	Register(ctx context.Context, fullName, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) (string, int, error)
	ResetPassword(ctx context.Context, password, token string) (string, int, error)
	GetUserOrders(ctx context.Context, token, userID string) ([]Order, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "vitrine/0.1"
	requestTimeout   = 10 * time.Second

	// DefaultPerPage is the page size used when callers pass zero.
	DefaultPerPage = 10
)

// APIError is a non-2xx response carrying the server's structured message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return e.Message
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout. Non-positive
// values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListProducts retrieves one catalog page. A zero perPage falls back to
// DefaultPerPage. The payload may arrive enveloped; see unwrapEnvelope.
func (c *Client) ListProducts(ctx context.Context, page, perPage int) (ProductPage, error) {
	if c == nil {
		return ProductPage{}, fmt.Errorf("client is nil")
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("perPage", strconv.Itoa(perPage))
	rel := &url.URL{Path: "/products", RawQuery: values.Encode()}

	var raw json.RawMessage
	if _, err := c.do(ctx, http.MethodGet, rel, "", nil, &raw); err != nil {
		return ProductPage{}, err
	}
	payload, err := unwrapEnvelope(raw)
	if err != nil {
		return ProductPage{}, err
	}
	var pageResp ProductPage
	if err := json.Unmarshal(payload, &pageResp); err != nil {
		return ProductPage{}, fmt.Errorf("decode product page: %w", err)
	}
	return pageResp, nil
}

// GetProduct retrieves a single product by id. Shares the envelope handling
// of ListProducts.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/products/" + url.PathEscape(id)}

	var raw json.RawMessage
	if _, err := c.do(ctx, http.MethodGet, rel, "", nil, &raw); err != nil {
		return Product{}, err
	}
	payload, err := unwrapEnvelope(raw)
	if err != nil {
		return Product{}, err
	}
	var product Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return Product{}, fmt.Errorf("decode product: %w", err)
	}
	return product, nil
}

// CreateReview submits a product review. The token is sent as-is; an empty
// token still produces a request and surfaces the server's rejection.
func (c *Client) CreateReview(ctx context.Context, token, productID string, review ReviewInput) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/products/reviews/" + url.PathEscape(productID)}
	_, err := c.do(ctx, http.MethodPost, rel, token, review, nil)
	return err
}

// Login exchanges credentials for the full user record including the
// session token.
func (c *Client) Login(ctx context.Context, email, password string) (UserInfo, error) {
	if c == nil {
		return UserInfo{}, fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password}
	var info UserInfo
	if _, err := c.do(ctx, http.MethodPost, &url.URL{Path: "/login"}, "", body, &info); err != nil {
		return UserInfo{}, err
	}
	return info, nil
}

// Register creates an account. It does not authenticate: the server only
// replies with a message asking the user to verify their email.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	body := map[string]string{"fullName": fullName, "email": email, "password": password}
	var resp struct {
		Message string `json:"message"`
	}
	if _, err := c.do(ctx, http.MethodPost, &url.URL{Path: "/users/register"}, "", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// VerifyEmail confirms the account behind the verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	_, err := c.do(ctx, http.MethodGet, &url.URL{Path: "/users/verify-email"}, token, nil, nil)
	return err
}

// RequestPasswordReset asks the server to mail a reset link. Returns the
// server message and HTTP status.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, int, error) {
	if c == nil {
		return "", 0, fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email}
	var resp struct {
		Message string `json:"message"`
	}
	status, err := c.do(ctx, http.MethodPost, &url.URL{Path: "/users/password-reset-request"}, "", body, &resp)
	if err != nil {
		return "", status, err
	}
	return resp.Message, status, nil
}

// ResetPassword sets a new password using the reset token from the email.
func (c *Client) ResetPassword(ctx context.Context, password, token string) (string, int, error) {
	if c == nil {
		return "", 0, fmt.Errorf("client is nil")
	}
	body := map[string]string{"password": password}
	var resp struct {
		Message string `json:"message"`
	}
	status, err := c.do(ctx, http.MethodPost, &url.URL{Path: "/users/password-reset"}, token, body, &resp)
	if err != nil {
		return "", status, err
	}
	return resp.Message, status, nil
}

// GetUserOrders retrieves the order history for the given user id.
func (c *Client) GetUserOrders(ctx context.Context, token, userID string) ([]Order, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/users/" + url.PathEscape(userID)}
	var orders []Order
	if _, err := c.do(ctx, http.MethodGet, rel, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// unwrapEnvelope resolves the two payload shapes the catalog endpoints can
// return: either the JSON object directly, or an envelope whose "body"
// field holds the real payload as a string-encoded JSON value. Malformed
// body JSON is a request failure.
func unwrapEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	var env struct {
		Body *string `json:"body"`
	}
	// The payload may be a bare array or other non-object JSON, in which
	// case it cannot be an envelope.
	if err := json.Unmarshal(raw, &env); err != nil || env.Body == nil {
		return raw, nil
	}
	inner := json.RawMessage(*env.Body)
	if !json.Valid(inner) {
		return nil, fmt.Errorf("parse enveloped body: invalid JSON")
	}
	return inner, nil
}

// do performs one JSON request. A non-empty token is sent as a bearer
// credential. Returns the HTTP status code alongside any error so callers
// that surface status to the UI can do so.
func (c *Client) do(ctx context.Context, method string, rel *url.URL, token string, body, dest any) (int, error) {
	// The base URL may carry a deployment prefix (e.g. an API gateway
	// stage), so join paths instead of resolving the absolute rel path.
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			apiErr.Message = payload.Message
		}
		return resp.StatusCode, apiErr
	}
	if dest == nil {
		return resp.StatusCode, nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
