package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ratehub/internal/models"

	"github.com/google/uuid"
)

// HTTPClient implements Client over net/http against a base URL. Every
// mutating request carries a fresh X-Request-ID so racing or repeated
// short-lived requests stay distinguishable server-side.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewHTTPClient creates a client for the service at baseURL. tokens
// provides the bearer token for authenticated calls.
func NewHTTPClient(baseURL string, tokens TokenSource) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("upstream base URL must not be empty")
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}, nil
}

// Login exchanges credentials for the identity and its token.
func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.User, string, error) {
	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, role models.Role, req models.UpdatePasswordRequest) error {
	path := "/user/update-password"
	if role == models.RoleStoreOwner {
		path = "/store-owner/update-password"
	}
	return c.do(ctx, http.MethodPut, path, req, nil)
}

func (c *HTTPClient) ListRatedStores(ctx context.Context) ([]models.RatedStore, error) {
	var stores []models.RatedStore
	if err := c.do(ctx, http.MethodGet, "/user/stores", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (c *HTTPClient) CreateRating(ctx context.Context, req models.RateRequest) error {
	return c.do(ctx, http.MethodPost, "/user/rate", req, nil)
}

func (c *HTTPClient) UpdateRating(ctx context.Context, req models.RateRequest) error {
	return c.do(ctx, http.MethodPut, "/user/rate", req, nil)
}

func (c *HTTPClient) AdminDashboard(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &stats); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := c.do(ctx, http.MethodGet, "/admin/stores", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (c *HTTPClient) AddUser(ctx context.Context, req models.AddUserRequest) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/add-user", req, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

func (c *HTTPClient) AddStore(ctx context.Context, req models.AddStoreRequest) error {
	return c.do(ctx, http.MethodPost, "/admin/add-store", req, nil)
}

func (c *HTTPClient) OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error) {
	var dash models.OwnerDashboard
	if err := c.do(ctx, http.MethodGet, "/store-owner/dashboard", nil, &dash); err != nil {
		return models.OwnerDashboard{}, err
	}
	return dash, nil
}

// do issues one JSON request and decodes the response into out when
// non-nil. Non-2xx statuses map onto the package's error taxonomy.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(method, path, resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *HTTPClient) statusError(method, path string, resp *http.Response) error {
	var serverErr struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&serverErr)

	var base error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = ErrUnauthorized
	case http.StatusForbidden:
		base = ErrForbidden
	case http.StatusNotFound:
		base = ErrNotFound
	default:
		base = ErrUpstream
	}
	if serverErr.Message != "" {
		return fmt.Errorf("%s %s: %s: %w", method, path, serverErr.Message, base)
	}
	return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, base)
}
