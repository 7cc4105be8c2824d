// Package client is a typed HTTP client for the Re-Connect API.
// Every endpoint has an explicit response schema, normalized here at
// the boundary so consumers never inspect raw JSON shapes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// User is the API's user representation.
type User struct {
	ID               uint   `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profile_pic"`
	IsOnboarded      bool   `json:"is_onboarded"`
}

// FriendRequest is the API's friend-request representation.
type FriendRequest struct {
	ID          uint   `json:"id"`
	SenderID    uint   `json:"sender_id"`
	RecipientID uint   `json:"recipient_id"`
	Status      string `json:"status"`
	Sender      User   `json:"sender"`
	Recipient   User   `json:"recipient"`
}

// FriendRequests groups the two kinds of request the notifications
// view shows.
type FriendRequests struct {
	Incoming []FriendRequest `json:"incoming_requests"`
	Accepted []FriendRequest `json:"accepted_requests"`
}

// AuthResult carries the session token and profile returned by signup
// and login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// StreamCredentials authorize the user with the external chat provider.
type StreamCredentials struct {
	Token  string `json:"token"`
	APIKey string `json:"api_key"`
}

// SignupInput is the payload for Signup.
type SignupInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput is the payload for onboarding and profile updates.
type ProfileInput struct {
	FullName         string `json:"full_name"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profile_pic"`
}

// APIError is a non-2xx response decoded into the server's error schema.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the Re-Connect API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8560/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr := json.Unmarshal(raw, apiErr); decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Signup registers a new account and stores the returned token.
func (c *Client) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", input, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// Logout revokes the current token server-side and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// CompleteOnboarding submits the onboarding profile.
func (c *Client) CompleteOnboarding(ctx context.Context, input ProfileInput) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/onboarding", input, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// UpdateProfile updates the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/profile", input, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// RecommendedUsers lists peers the user could connect with.
func (c *Client) RecommendedUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Friends lists the user's connections.
func (c *Client) Friends(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users/friends", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SendFriendRequest sends a request to the given user.
func (c *Client) SendFriendRequest(ctx context.Context, userID uint) (*FriendRequest, error) {
	var request FriendRequest
	path := fmt.Sprintf("/users/friend-request/%d", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// AcceptFriendRequest accepts the given request.
func (c *Client) AcceptFriendRequest(ctx context.Context, requestID uint) (*FriendRequest, error) {
	var request FriendRequest
	path := fmt.Sprintf("/users/friend-request/%d/accept", requestID)
	if err := c.do(ctx, http.MethodPut, path, nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// FriendRequests lists incoming pending requests and the user's own
// requests that were accepted.
func (c *Client) FriendRequests(ctx context.Context) (*FriendRequests, error) {
	var result FriendRequests
	if err := c.do(ctx, http.MethodGet, "/users/friend-requests", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OutgoingFriendRequests lists the user's pending outgoing requests.
func (c *Client) OutgoingFriendRequests(ctx context.Context) ([]FriendRequest, error) {
	var requests []FriendRequest
	if err := c.do(ctx, http.MethodGet, "/users/outgoing-friend-requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// StreamToken fetches credentials for the external chat provider.
func (c *Client) StreamToken(ctx context.Context) (*StreamCredentials, error) {
	var creds StreamCredentials
	if err := c.do(ctx, http.MethodGet, "/chat/token", nil, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}
