package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

const (
	headerApiKey      = "X-Api-Key"
	headerApiSecret   = "X-Api-Secret"
	headerApiPassword = "X-Api-Password"
	headerRequestId   = "X-Request-Id"

	authenticationErrorType = "AuthenticationError"
	maxErrorBody            = 64 << 10
)

// Client talks to the venue bridge over HTTP for a single venue session
type Client struct {
	baseURL    string
	venue      string
	creds      models.Credentials
	httpClient http.Client
	limiter    *rate.Limiter
}

var _ exchange.Client = (*Client)(nil)

// APIError is a non-2xx bridge response
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("gateway returned %d %s: %s", e.Status, e.Type, e.Message)
	}
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Message)
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewConstructor returns an exchange.ClientConstructor opening bridge clients with cfg
func NewConstructor(cfg models.GatewayConfig) exchange.ClientConstructor {
	return func(profile exchange.Profile, creds models.Credentials) (exchange.Client, error) {
		return NewClient(cfg, profile.Id, creds)
	}
}

func NewClient(cfg models.GatewayConfig, venue string, creds models.Credentials) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid gateway url %q: %w", cfg.BaseURL, err)
	}

	httpClient, err := createCustomHttpClient(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		venue:      venue,
		creds:      creds,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}, nil
}

func createCustomHttpClient(timeout time.Duration) (http.Client, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	tr := &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return http.Client{}, err
	}

	return http.Client{
		Transport: tr,
		Timeout:   timeout,
	}, nil
}

type balanceRequest struct {
	Type exchange.AccountType `json:"type"`
}

func (c *Client) FetchBalance(ctx context.Context, account exchange.AccountType) (*exchange.Balance, error) {
	var balance exchange.Balance
	if err := c.do(ctx, http.MethodPost, "balance", balanceRequest{Type: account}, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (c *Client) FetchCurrency(ctx context.Context, code string) (*exchange.Currency, error) {
	var currency exchange.Currency
	err := c.do(ctx, http.MethodGet, "currencies/"+url.PathEscape(code), nil, &currency)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

func (c *Client) Withdraw(ctx context.Context, params exchange.WithdrawParams) (*exchange.WithdrawalReceipt, error) {
	var receipt exchange.WithdrawalReceipt
	if err := c.do(ctx, http.MethodPost, "withdraw", params, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("unable to encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := fmt.Sprintf("%s/v1/%s/%s", c.baseURL, c.venue, path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("unable to build %s request: %w", path, err)
	}

	requestId := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestId, requestId)
	req.Header.Set(headerApiKey, c.creds.ApiKey)
	req.Header.Set(headerApiSecret, c.creds.ApiSecret)
	if c.creds.Password != "" {
		req.Header.Set(headerApiPassword, c.creds.Password)
	}

	zap.L().Debug("Gateway request",
		zap.String("venue", c.venue),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestId))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{Status: resp.StatusCode}
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden ||
		apiErr.Type == authenticationErrorType {
		return fmt.Errorf("%w: %w", exchange.ErrAuthentication, apiErr)
	}
	return apiErr
}
