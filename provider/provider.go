package provider

import (
	"context"
	"errors"
	"fmt"
)

// OTPTypeRecovery is the only one-time-token type the gateway exchanges.
// Other OTP types (signup, magiclink, ...) exist at the provider but are
// rejected by the confirmation flow.
const OTPTypeRecovery = "recovery"

// Session is the provider-issued proof of authentication. The access token is
// opaque to the gateway; ExpiresIn is in seconds.
type Session struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// SignUpResult carries the identifier of a newly created provider account.
// UserID may be empty when the provider defers account creation (e.g. pending
// email confirmation with no user record returned).
type SignUpResult struct {
	UserID string
}

// AuthResult is the payload of a successful Authenticate call. Session may be
// nil even on success; callers must check before issuing a cookie.
type AuthResult struct {
	Session *Session
}

// Client is the capability interface over the external identity provider.
// The provider owns credential storage, password hashing, token signing and
// single-use enforcement of recovery tokens. Any compliant backend can be
// substituted without touching the lifecycle service.
type Client interface {
	CreateAccount(ctx context.Context, email, password string) (*SignUpResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	SendPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
	ExchangeRecoveryToken(ctx context.Context, otpType, tokenHash string) error
	RevokeSession(ctx context.Context, accessToken string) error
}

// Error classification codes returned by the provider.
const (
	CodeWeakPassword       = "weak_password"
	CodeInvalidCredentials = "invalid_credentials"
	CodeOTPExpired         = "otp_expired"
	CodeTimeout            = "timeout"
)

// Error is a classified provider failure. Status is the provider's HTTP status
// where applicable, zero otherwise.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("provider: %s", e.Message)
}

// IsCode reports whether err is a provider Error with the given code.
func IsCode(err error, code string) bool {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}
