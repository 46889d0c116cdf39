package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// HTTPClient is a Client implementation over a GoTrue-style REST identity
// provider. All durable auth state (accounts, sessions, recovery tokens)
// lives behind these endpoints.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a provider client for the given base URL and API key.
// A nil httpClient gets a default with a bounded timeout so a hung provider
// surfaces as a classified error rather than an unresolved request.
func NewHTTPClient(baseURL, apiKey string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type signUpResponse struct {
	ID   string `json:"id"`
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (c *HTTPClient) CreateAccount(ctx context.Context, email, password string) (*SignUpResult, error) {
	body, err := c.post(ctx, "/signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var resp signUpResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.CreateAccount] decode response")
	}

	userID := resp.ID
	if userID == "" && resp.User != nil {
		userID = resp.User.ID
	}
	return &SignUpResult{UserID: userID}, nil
}

func (c *HTTPClient) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	body, err := c.post(ctx, "/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.Authenticate] decode response")
	}
	if session.AccessToken == "" {
		// Success status but no usable session payload
		return &AuthResult{}, nil
	}
	return &AuthResult{Session: &session}, nil
}

func (c *HTTPClient) SendPasswordReset(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/recover", "", map[string]string{"email": email})
	return err
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	_, err := c.do(ctx, http.MethodPut, "/user", accessToken, map[string]string{"password": newPassword})
	return err
}

func (c *HTTPClient) ExchangeRecoveryToken(ctx context.Context, otpType, tokenHash string) error {
	_, err := c.post(ctx, "/verify", "", map[string]string{
		"type":       otpType,
		"token_hash": tokenHash,
	})
	return err
}

func (c *HTTPClient) RevokeSession(ctx context.Context, accessToken string) error {
	_, err := c.post(ctx, "/logout", accessToken, nil)
	return err
}

func (c *HTTPClient) post(ctx context.Context, endpoint, bearer string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, bearer, payload)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint, bearer string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "[HTTPClient.do] marshal payload")
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.do] new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, &Error{Code: CodeTimeout, Message: "provider request timed out"}
		}
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.do] read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, classifyError(resp.StatusCode, body)
	}
	return body, nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	var t timeout
	return errors.As(err, &t) && t.Timeout()
}

// errorResponse covers the error body shapes the provider emits.
type errorResponse struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func classifyError(status int, body []byte) *Error {
	var resp errorResponse
	_ = json.Unmarshal(body, &resp)

	msg := resp.Msg
	if msg == "" {
		msg = resp.Message
	}
	if msg == "" {
		msg = resp.ErrorDescription
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &Error{
		Code:    resp.ErrorCode,
		Message: msg,
		Status:  status,
	}
}
