package auth

import "errors"

// Terminal outcomes of the lifecycle operations. Every provider or directory
// failure is translated into exactly one of these before it reaches the HTTP
// surface; none of them trigger a retry inside the gateway.
var (
	UnknownTenantErr      = errors.New("unknown tenant")
	WeakPasswordErr       = errors.New("password not strong enough")
	ProviderErr           = errors.New("identity provider error")
	InvalidCredentialsErr = errors.New("invalid email or password")
	SessionUnavailableErr = errors.New("failed to retrieve session")
	ResetRequestErr       = errors.New("password reset request failed")
	UnauthorizedErr       = errors.New("not authorized")
	SignOutErr            = errors.New("sign out error")
)
