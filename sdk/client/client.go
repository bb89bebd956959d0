package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Config represents the configuration for the identity client
type Config struct {
	// BaseURL is the base URL of the identity service
	BaseURL string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
	// SessionToken authenticates requests when set
	SessionToken string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the identity service client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new identity client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// SetSessionToken installs the token used on authenticated calls.
func (c *Client) SetSessionToken(token string) {
	c.config.SessionToken = token
}

// User is the wire shape of a user account
type User struct {
	ID       string `json:"id"`
	UserID   string `json:"userid"`
	Username string `json:"username,omitempty"`
	Fullname string `json:"fullname"`
	Status   string `json:"status"`
}

// SignupRequest registers a new account
type SignupRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
}

// SignupResponse carries the new account and its session token
type SignupResponse struct {
	Ok           bool   `json:"ok"`
	User         *User  `json:"user"`
	SessionToken string `json:"session_token"`
	Error        string `json:"error,omitempty"`
}

// Signup registers a user and stores the returned session token on the
// client.
func (c *Client) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Fullname == "" {
		return nil, errors.New("fullname is required")
	}

	var resp SignupResponse
	if err := c.post(ctx, c.config.BaseURL+"/api/auth/signup", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	if resp.Error != "" {
		return &resp, errors.New(resp.Error)
	}
	c.config.SessionToken = resp.SessionToken
	return &resp, nil
}

// LoginRequest authenticates with a username or userid
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse carries the session token and a JWT for service-to-service use
type LoginResponse struct {
	Ok           bool   `json:"ok"`
	User         *User  `json:"user,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
	Token        string `json:"token,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Login authenticates and stores the returned session token on the
// client.
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Identifier == "" || req.Password == "" {
		return nil, errors.New("identifier and password are required")
	}

	var resp LoginResponse
	if err := c.post(ctx, c.config.BaseURL+"/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if resp.Error != "" {
		return &resp, errors.New(resp.Error)
	}
	c.config.SessionToken = resp.SessionToken
	return &resp, nil
}

// Logout revokes the current session.
func (c *Client) Logout(ctx context.Context) error {
	var resp struct {
		Ok bool `json:"ok"`
	}
	if err := c.post(ctx, c.config.BaseURL+"/api/auth/logout", struct{}{}, &resp); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	c.config.SessionToken = ""
	return nil
}

// UserResponse wraps a single user lookup
type UserResponse struct {
	Ok    bool   `json:"ok"`
	User  *User  `json:"user"`
	Error string `json:"error,omitempty"`
}

// GetUser fetches a user by permanent userid. Retired userids resolve
// to the surviving account.
func (c *Client) GetUser(ctx context.Context, userid string) (*User, error) {
	if userid == "" {
		return nil, errors.New("userid is required")
	}

	var resp UserResponse
	endpoint := fmt.Sprintf("%s/api/users/%s", c.config.BaseURL, url.PathEscape(userid))
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.User, nil
}

// GetUserByUsername fetches a user by username.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	var resp UserResponse
	endpoint := fmt.Sprintf("%s/api/users/by-username/%s", c.config.BaseURL, url.PathEscape(username))
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.User, nil
}

// AutocompleteResult is one typeahead hit
type AutocompleteResult struct {
	UserID   string `json:"userid"`
	Username string `json:"username,omitempty"`
	Fullname string `json:"fullname"`
}

// Autocomplete searches users by name, username, userid, "@" external
// handle or email.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]AutocompleteResult, error) {
	var resp struct {
		Ok      bool                 `json:"ok"`
		Results []AutocompleteResult `json:"results"`
		Error   string               `json:"error,omitempty"`
	}
	endpoint := fmt.Sprintf("%s/api/users/autocomplete?q=%s", c.config.BaseURL, url.QueryEscape(query))
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to autocomplete: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Results, nil
}

// ClaimEmailResponse acknowledges a claim; the secret travels by email
type ClaimEmailResponse struct {
	Ok          bool   `json:"ok"`
	Fingerprint string `json:"fingerprint"`
	Error       string `json:"error,omitempty"`
}

// ClaimEmail starts email verification for the current user.
func (c *Client) ClaimEmail(ctx context.Context, email string) (*ClaimEmailResponse, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	var resp ClaimEmailResponse
	body := map[string]string{"email": email}
	if err := c.post(ctx, c.config.BaseURL+"/api/profile/email", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to claim email: %w", err)
	}
	if resp.Error != "" {
		return &resp, errors.New(resp.Error)
	}
	return &resp, nil
}

// VerifyEmail redeems the verification code from the emailed link.
func (c *Client) VerifyEmail(ctx context.Context, fingerprint, code string) error {
	if fingerprint == "" || code == "" {
		return errors.New("fingerprint and code are required")
	}

	var resp struct {
		Ok    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}
	endpoint := fmt.Sprintf("%s/api/profile/email/%s/verify?code=%s",
		c.config.BaseURL, url.PathEscape(fingerprint), url.QueryEscape(code))
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	return nil
}

// Organization is the wire shape of an organization
type Organization struct {
	ID     string `json:"id"`
	UserID string `json:"userid"`
	Name   string `json:"name,omitempty"`
	Title  string `json:"title"`
}

// CreateOrganizationRequest names a new organization
type CreateOrganizationRequest struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// CreateOrganization creates an organization owned by the current user.
func (c *Client) CreateOrganization(ctx context.Context, req *CreateOrganizationRequest) (*Organization, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Name == "" || req.Title == "" {
		return nil, errors.New("name and title are required")
	}

	var resp struct {
		Ok           bool          `json:"ok"`
		Organization *Organization `json:"organization"`
		Error        string        `json:"error,omitempty"`
	}
	if err := c.post(ctx, c.config.BaseURL+"/api/organizations", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Organization, nil
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error_code,omitempty"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (Status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Marshal request to JSON
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	return c.do(httpReq, resp)
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	c.authorize(httpReq)

	return c.do(httpReq, resp)
}

func (c *Client) authorize(req *http.Request) {
	if c.config.SessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.SessionToken)
	}
}

func (c *Client) do(httpReq *http.Request, resp interface{}) error {
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Try to decode error response
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil {
			// If we can't decode the error, create a generic one
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}

		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	if resp == nil {
		return nil
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
