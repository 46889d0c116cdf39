package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/leasehub/go-auth-gateway/provider"
	"github.com/leasehub/go-auth-gateway/tenants"
)

// RedirectDecision is the outcome of the recovery-confirmation flow. When OK
// is false the HTTP surface redirects to the configured error page; Location
// is only meaningful when OK is true.
type RedirectDecision struct {
	OK       bool
	Location string
}

// LifecycleService sequences the tenant directory and the identity provider
// into the account-lifecycle operations. It holds no state between requests;
// uniqueness of accounts and single-use of recovery tokens are enforced by
// the provider.
type LifecycleService struct {
	tenants  tenants.Repo
	provider provider.Client
	logger   zerolog.Logger
}

// NewLifecycleService initialises the service with its required collaborators.
func NewLifecycleService(tenantRepo tenants.Repo, providerClient provider.Client, logger zerolog.Logger) (*LifecycleService, error) {
	if tenantRepo == nil {
		return nil, errors.New("[NewLifecycleService] tenant repo is required")
	}
	if providerClient == nil {
		return nil, errors.New("[NewLifecycleService] provider client is required")
	}

	return &LifecycleService{
		tenants:  tenantRepo,
		provider: providerClient,
		logger:   logger,
	}, nil
}

// Register creates a provider account for an email that already has a tenant
// record. Registration is tenant-gated, not self-service: without a tenant the
// provider is never called. A successful account creation is linked back to
// the tenant row; a link failure is logged and the registration still
// succeeds, leaving an inconsistency window resolved by the operator.
func (ls *LifecycleService) Register(ctx context.Context, email, password string) error {
	if _, err := ls.tenants.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, tenants.ErrTenantNotFound) {
			return UnknownTenantErr
		}
		ls.logger.Error().Err(err).Msg("tenant lookup failed")
		return ProviderErr
	}

	result, err := ls.provider.CreateAccount(ctx, email, password)
	if err != nil {
		if provider.IsCode(err, provider.CodeWeakPassword) {
			return WeakPasswordErr
		}
		ls.logger.Error().Err(err).Msg("account creation failed")
		return ProviderErr
	}

	if result != nil && result.UserID != "" {
		if err := ls.tenants.LinkUser(ctx, email, result.UserID); err != nil {
			ls.logger.Warn().Err(err).Str("user_id", result.UserID).
				Msg("registered account could not be linked to tenant")
		}
	}
	return nil
}

// SignIn authenticates the credential and returns the provider session. A
// success payload without a session yields SessionUnavailableErr and no cookie
// may be written. Failure messages are deliberately generic so the response
// does not reveal whether the email is registered.
func (ls *LifecycleService) SignIn(ctx context.Context, email, password string) (*provider.Session, error) {
	result, err := ls.provider.Authenticate(ctx, email, password)
	if err != nil {
		return nil, InvalidCredentialsErr
	}
	if result.Session == nil {
		return nil, SessionUnavailableErr
	}
	return result.Session, nil
}

// RequestPasswordReset asks the provider to mail a recovery token. No tenant
// check happens here: failing fast for unknown emails would leak which
// addresses are registered. The recovery token is minted and owned entirely
// by the provider.
func (ls *LifecycleService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := ls.provider.SendPasswordReset(ctx, email); err != nil {
		ls.logger.Error().Err(err).Msg("password reset request failed")
		return ResetRequestErr
	}
	return nil
}

// CompletePasswordReset delegates the credential update to the provider. The
// recovery context is the bearer token obtained from the prior recovery
// confirmation; any failure collapses to UnauthorizedErr.
func (ls *LifecycleService) CompletePasswordReset(ctx context.Context, accessToken, newPassword string) error {
	if err := ls.provider.UpdatePassword(ctx, accessToken, newPassword); err != nil {
		ls.logger.Error().Err(err).Msg("password update rejected")
		return UnauthorizedErr
	}
	return nil
}

// ConfirmRecovery decides where the one-time confirmation link lands. Only
// the "recovery" OTP type passes through this flow; other token types are
// rejected before the provider is called. The provider invalidates the token
// after one successful exchange.
func (ls *LifecycleService) ConfirmRecovery(ctx context.Context, tokenHash, otpType, next string) RedirectDecision {
	if tokenHash == "" || otpType != provider.OTPTypeRecovery {
		return RedirectDecision{}
	}

	if err := ls.provider.ExchangeRecoveryToken(ctx, otpType, tokenHash); err != nil {
		ls.logger.Warn().Err(err).Msg("recovery token exchange failed")
		return RedirectDecision{}
	}
	if next == "" {
		return RedirectDecision{}
	}
	return RedirectDecision{OK: true, Location: next}
}

// SignOut revokes the provider session. The HTTP surface clears the local
// cookie; repeated calls are safe and resolve to exactly one outcome each.
func (ls *LifecycleService) SignOut(ctx context.Context, accessToken string) error {
	if err := ls.provider.RevokeSession(ctx, accessToken); err != nil {
		ls.logger.Warn().Err(err).Msg("session revocation failed")
		return SignOutErr
	}
	return nil
}
