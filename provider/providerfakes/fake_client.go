package providerfakes

import (
	"context"
	"sync"

	"github.com/leasehub/go-auth-gateway/provider"
)

var _ provider.Client = (*FakeClient)(nil)

// FakeClient is an in-memory provider.Client for tests. Each operation can be
// scripted with a result or error; calls are recorded for assertions.
type FakeClient struct {
	lock sync.Mutex

	CreateAccountResult *provider.SignUpResult
	CreateAccountErr    error
	AuthenticateResult  *provider.AuthResult
	AuthenticateErr     error
	SendResetErr        error
	UpdatePasswordErr   error
	ExchangeErr         error
	RevokeErr           error

	CreateAccountCalls []string // emails
	ExchangeCalls      []string // token hashes
	RevokedTokens      []string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

func (f *FakeClient) CreateAccount(_ context.Context, email, _ string) (*provider.SignUpResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.CreateAccountCalls = append(f.CreateAccountCalls, email)
	if f.CreateAccountErr != nil {
		return nil, f.CreateAccountErr
	}
	if f.CreateAccountResult != nil {
		return f.CreateAccountResult, nil
	}
	return &provider.SignUpResult{}, nil
}

func (f *FakeClient) Authenticate(_ context.Context, _, _ string) (*provider.AuthResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.AuthenticateErr != nil {
		return nil, f.AuthenticateErr
	}
	if f.AuthenticateResult != nil {
		return f.AuthenticateResult, nil
	}
	return &provider.AuthResult{}, nil
}

func (f *FakeClient) SendPasswordReset(_ context.Context, _ string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.SendResetErr
}

func (f *FakeClient) UpdatePassword(_ context.Context, _, _ string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.UpdatePasswordErr
}

func (f *FakeClient) ExchangeRecoveryToken(_ context.Context, _, tokenHash string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ExchangeCalls = append(f.ExchangeCalls, tokenHash)
	return f.ExchangeErr
}

func (f *FakeClient) RevokeSession(_ context.Context, accessToken string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.RevokedTokens = append(f.RevokedTokens, accessToken)
	return f.RevokeErr
}
