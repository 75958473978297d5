package anubis

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/prediction-league/internal/domain/user"
	basecache "github.com/riskibarqy/prediction-league/internal/platform/cache"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/platform/resilience"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

const (
	adminKeyHeader       = "x-admin-key"
	defaultPrincipalTTL  = 30 * time.Second
	maxIntrospectBodyLen = 1 << 20
)

var errAnubisTransient = crerr.New("anubis transient failure")

type CircuitBreakerConfig = resilience.CircuitBreakerConfig

type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	principals    *basecache.Store
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
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		adminKey:      strings.TrimSpace(adminKey),
		breaker:       resilience.NewCircuitBreakerFromConfig(breakerCfg),
		principals:    basecache.NewStore(defaultPrincipalTTL),
		logger:        logger.With("component", "anubis"),
	}
}

// VerifyAccessToken resolves a bearer token to the calling user. Verified principals are
// cached briefly by token hash.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	v, err := c.principals.GetOrLoad(ctx, hashToken(token), func(ctx context.Context) (any, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, _ := v.(user.Principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.breaker == nil {
		return c.verified(c.doIntrospect(ctx, token))
	}

	var principal user.Principal
	err := c.breaker.Execute(func() error {
		var err error
		principal, err = c.doIntrospect(ctx, token)
		return err
	}, isCircuitFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		return user.Principal{}, dependencyUnavailable(err)
	}
	return c.verified(principal, err)
}

func (c *Client) verified(principal user.Principal, err error) (user.Principal, error) {
	if crerr.Is(err, errAnubisTransient) {
		return user.Principal{}, dependencyUnavailable(err)
	}
	if err != nil {
		return user.Principal{}, err
	}
	return principal, nil
}

func (c *Client) doIntrospect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := jsoniter.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "request introspection to anubis"), errAnubisTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIntrospectBodyLen))
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "read introspect response"), errAnubisTransient)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.ErrorContext(ctx, "anubis rejected introspection credentials", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Wrapf(usecase.ErrDependencyUnavailable, "anubis introspection rejected with status %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		c.logger.WarnContext(ctx, "anubis introspection unavailable", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Mark(crerr.Newf("anubis introspection failed with status %d", resp.StatusCode), errAnubisTransient)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Wrapf(usecase.ErrUnauthorized, "introspection status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := jsoniter.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, dependencyUnavailable(crerr.Wrap(err, "unmarshal introspect response"))
	}
	if !decoded.Active {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "inactive token")
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "invalid introspect response: user_id is empty")
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

// dependencyUnavailable keeps the usecase sentinel on the primary chain and attaches cause
// as a secondary error for logs.
func dependencyUnavailable(cause error) error {
	return crerr.WithSecondaryError(crerr.Wrap(usecase.ErrDependencyUnavailable, "anubis introspection"), cause)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errAnubisTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
