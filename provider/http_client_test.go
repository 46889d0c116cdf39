package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leasehub/go-auth-gateway/provider"
)

func newProviderStub(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *provider.HTTPClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, provider.NewHTTPClient(srv.URL, "test-api-key", srv.Client())
}

func TestCreateAccountReturnsUserID(t *testing.T) {
	_, client := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/signup", r.URL.Path)
		require.Equal(t, "test-api-key", r.Header.Get("apikey"))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "user-1"})
	})

	result, err := client.CreateAccount(context.Background(), "resident@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "user-1", result.UserID)
}

func TestCreateAccountClassifiesWeakPassword(t *testing.T) {
	_, client := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error_code": "weak_password",
			"msg":        "Password should be at least 6 characters.",
		})
	})

	_, err := client.CreateAccount(context.Background(), "resident@example.com", "123")
	require.Error(t, err)
	require.True(t, provider.IsCode(err, provider.CodeWeakPassword))
}

func TestAuthenticateParsesSession(t *testing.T) {
	_, client := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-abc",
			"expires_in":   3600,
		})
	})

	result, err := client.Authenticate(context.Background(), "resident@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, result.Session)
	require.Equal(t, "token-abc", result.Session.AccessToken)
	require.Equal(t, 3600, result.Session.ExpiresIn)
}

func TestAuthenticateWithoutTokenYieldsNilSession(t *testing.T) {
	_, client := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	result, err := client.Authenticate(context.Background(), "resident@example.com", "password123")
	require.NoError(t, err)
	require.Nil(t, result.Session)
}

func TestExchangeRecoveryTokenErrorCarriesCode(t *testing.T) {
	_, client := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error_code": "otp_expired",
			"msg":        "Token has expired or is invalid",
		})
	})

	err := client.ExchangeRecoveryToken(context.Background(), provider.OTPTypeRecovery, "abc")
	require.Error(t, err)
	require.True(t, provider.IsCode(err, provider.CodeOTPExpired))
}

func TestRevokeSessionSendsBearer(t *testing.T) {
	_, client := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/logout", r.URL.Path)
		require.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.RevokeSession(context.Background(), "token-abc"))
}

func TestErrorMessageFallsBackToStatusText(t *testing.T) {
	_, client := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.SendPasswordReset(context.Background(), "resident@example.com")
	require.Error(t, err)

	var pErr *provider.Error
	require.ErrorAs(t, err, &pErr)
	require.Equal(t, http.StatusBadGateway, pErr.Status)
	require.NotEmpty(t, pErr.Message)
}
