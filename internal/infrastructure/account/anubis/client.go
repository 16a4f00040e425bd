package anubis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-league/internal/domain/user"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/platform/resilience"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

const (
	adminKeyHeader   = "x-admin-key"
	maxResponseBytes = 1 << 20
	// Introspection results are reused briefly so one page load does not
	// fan out into an identity call per request.
	defaultTokenCacheTTL = 30 * time.Second
)

// errAnubisTransient marks failures that say nothing about the token and
// count against the circuit breaker.
var errAnubisTransient = errors.New("anubis transient failure")

type CircuitBreakerConfig = resilience.CircuitBreakerConfig

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	tokens        *cache.Store
	logger        *logging.Logger
}

func NewClient(
	httpClient *http.Client,
	baseURL, introspectPath, adminKey string,
	breakerCfg CircuitBreakerConfig,
	logger *logging.Logger,
) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Second}
	}

	c := &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		adminKey:      strings.TrimSpace(adminKey),
		tokens:        cache.NewStore(defaultTokenCacheTTL),
		logger:        logger,
	}
	if breakerCfg.Enabled {
		c.breaker = resilience.NewCircuitBreaker(breakerCfg, nil)
		c.breaker.OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("anubis circuit breaker state changed", "from", from, "to", to)
		})
	}
	return c
}

// VerifyAccessToken implements httpapi.TokenVerifier.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthenticated)
	}

	return cache.GetOrLoadAs(ctx, c.tokens, hashToken(token), func(ctx context.Context) (user.Principal, error) {
		return c.introspectGuarded(ctx, token)
	})
}

func (c *Client) introspectGuarded(ctx context.Context, token string) (user.Principal, error) {
	if c.breaker == nil {
		return c.introspect(ctx, token)
	}

	var principal user.Principal
	err := c.breaker.Execute(ctx, isCircuitFailure, func(ctx context.Context) error {
		var err error
		principal, err = c.introspect(ctx, token)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return user.Principal{}, fmt.Errorf("%w: identity provider circuit open", usecase.ErrDependencyUnavailable)
	}
	return principal, err
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "anubis introspection request failed", "error", err)
		return user.Principal{}, transient(errors.Wrap(err, "request introspection to anubis"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return user.Principal{}, transient(errors.Wrap(err, "read introspect response"))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: token rejected by identity provider", usecase.ErrUnauthenticated)
	case resp.StatusCode == http.StatusForbidden:
		// Anubis rejected our admin key, not the caller's token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: identity provider denied introspection", usecase.ErrDependencyUnavailable)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection unavailable", "status_code", resp.StatusCode)
		return user.Principal{}, transient(errors.Newf("anubis introspection failed with status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, errors.Wrap(err, "unmarshal introspect response"))
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthenticated)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has empty user_id", usecase.ErrDependencyUnavailable)
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
