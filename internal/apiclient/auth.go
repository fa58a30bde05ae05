package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/model"
)

// LoginResult carries the outcome of the login call. When the account exists
// but is not verified yet the backend returns no token; RequiresVerification
// tells the caller to start the OTP flow instead of treating it as a failure.
type LoginResult struct {
	Token                string      `json:"token"`
	User                 *model.User `json:"user"`
	RequiresVerification bool        `json:"requiresVerification"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. On success the returned token
// is stored in the credential store, so subsequent calls are authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	if result.RequiresVerification {
		return &result, nil
	}
	if result.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	if err := c.creds.SetToken(result.Token); err != nil {
		return nil, fmt.Errorf("storing login token: %w", err)
	}
	return &result, nil
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
}

// Register creates a new account. The account starts unverified; the caller
// follows up with SendOTP/VerifyOTP.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, fmt.Errorf("registering: %w", err)
	}
	return &user, nil
}

// Logout invalidates the server-side session. The local credential is NOT
// cleared here - the auth store owns that, and clears it even when this call
// fails.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, &user); err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	return &user, nil
}

type otpRequest struct {
	Email string `json:"email"`
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SendOTP asks the backend to mail a one-time verification code.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	if err := c.do(ctx, http.MethodPost, "/otp/send", otpRequest{Email: email}, nil); err != nil {
		return fmt.Errorf("sending OTP: %w", err)
	}
	return nil
}

// VerifyOTP confirms the emailed code and activates the account.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	if err := c.do(ctx, http.MethodPost, "/otp/verify-otp", otpVerifyRequest{Email: email, Code: code}, nil); err != nil {
		return fmt.Errorf("verifying OTP: %w", err)
	}
	return nil
}
