// internal/gateway/auth.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/unilogos/internal/types"
)

const defaultAuthTimeout = 15 * time.Second

// MinPasswordLength is the shortest password the signup endpoint accepts.
const MinPasswordLength = 6

// AuthGateway performs login and signup exchanges against the remote auth
// API. Each call is a single request; there are no retries, the user
// resubmits on failure.
type AuthGateway struct {
	baseURL string
	client  *http.Client
}

// NewAuthGateway creates an AuthGateway for the given API base URL.
// A non-positive timeout falls back to the default.
func NewAuthGateway(baseURL string, timeout time.Duration) *AuthGateway {
	if timeout <= 0 {
		timeout = defaultAuthTimeout
	}
	return &AuthGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	Error  string `json:"error"`
}

// Login exchanges credentials for a session and bearer token. The caller
// is responsible for persisting the pair via the session store.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*types.Session, string, error) {
	return g.exchange(ctx, "/auth/login", email, password, "Login failed")
}

// Signup registers a new account and returns the auto-login session.
// Confirmation matching is the caller's concern; the minimum length rule
// is re-checked here so a bad caller cannot send an invalid request.
func (g *AuthGateway) Signup(ctx context.Context, email, password string) (*types.Session, string, error) {
	if len(password) < MinPasswordLength {
		return nil, "", &AuthError{Reason: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)}
	}
	return g.exchange(ctx, "/auth/signup", email, password, "Signup failed")
}

// exchange performs one credentials round trip against the given endpoint.
func (g *AuthGateway) exchange(ctx context.Context, path, email, password, defaultMsg string) (*types.Session, string, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, "", fmt.Errorf("marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Warn("auth request failed", "path", path, "error", err)
		return nil, "", &AuthError{Reason: NetworkErrorMessage}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("auth response unreadable", "path", path, "error", err)
		return nil, "", &AuthError{Reason: NetworkErrorMessage}
	}

	var parsed authResponse
	if err := json.Unmarshal(data, &parsed); err != nil && resp.StatusCode < 300 {
		return nil, "", fmt.Errorf("parse auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error
		if msg == "" {
			msg = defaultMsg
		}
		return nil, "", &AuthError{Reason: msg}
	}

	session := &types.Session{Email: email, UserID: parsed.UserID}
	return session, parsed.Token, nil
}
