package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"trackerdash/internal/domain"
	"trackerdash/pkg/config"
	"trackerdash/pkg/logger"
	"trackerdash/pkg/metrics"

	"golang.org/x/time/rate"
)

const refreshTokenPath = "/auth/refresh-token"

// response wrapper used by the record endpoints
type envelope[T any] struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// implements TrackerAPIClient and LinksAPIClient against the tracker backend
type BackendClient struct {
	client      *http.Client
	baseURL     string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// creates a new backend client
func NewBackendClient(cfg config.BackendConfig, logger *logger.Logger, metrics *metrics.Metrics) *BackendClient {
	limit := rate.Inf
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	return &BackendClient{
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:      strings.TrimRight(cfg.APIURL, "/"),
		logger:       logger,
		metrics:      metrics,
		rateLimiter:  rate.NewLimiter(limit, burst),
		accessToken:  cfg.AccessToken,
		refreshToken: cfg.RefreshToken,
	}
}

func (c *BackendClient) ListTrackers(ctx context.Context) ([]domain.AppTracker, error) {
	trackers, err := fetchEnvelope[[]domain.AppTracker](ctx, c, "trackers", "/app-tracker")
	if err != nil {
		return nil, err
	}
	if trackers == nil {
		trackers = []domain.AppTracker{}
	}
	return trackers, nil
}

func (c *BackendClient) FetchInstalls(ctx context.Context, trackerID string) ([]domain.Install, error) {
	installs, err := fetchEnvelope[[]domain.Install](ctx, c, "installs", "/install/app-tracker/"+url.PathEscape(trackerID))
	if err != nil {
		return nil, err
	}
	if installs == nil {
		installs = []domain.Install{}
	}
	return installs, nil
}

func (c *BackendClient) FetchSubscriptions(ctx context.Context, trackerID string) ([]domain.SubscriptionEvent, error) {
	events, err := fetchEnvelope[[]domain.SubscriptionEvent](ctx, c, "subscriptions", "/webhooks/superwall/app-tracker/"+url.PathEscape(trackerID))
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.SubscriptionEvent{}
	}
	return events, nil
}

func (c *BackendClient) ListTrackingLinks(ctx context.Context, trackerID string) ([]domain.TrackingLink, error) {
	var links []domain.TrackingLink
	if err := c.do(ctx, "links", http.MethodGet, "/app-tracker/"+url.PathEscape(trackerID)+"/tracking-links", nil, &links); err != nil {
		return nil, err
	}
	if links == nil {
		links = []domain.TrackingLink{}
	}
	return links, nil
}

func (c *BackendClient) CreateTrackingLink(ctx context.Context, trackerID string, req domain.CreateTrackingLinkRequest) (*domain.TrackingLink, error) {
	var link domain.TrackingLink
	if err := c.do(ctx, "links", http.MethodPost, "/app-tracker/"+url.PathEscape(trackerID)+"/tracking-links", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *BackendClient) UpdateTrackingLink(ctx context.Context, linkID string, req domain.UpdateTrackingLinkRequest) (*domain.TrackingLink, error) {
	var link domain.TrackingLink
	if err := c.do(ctx, "links", http.MethodPatch, "/tracking-links/"+url.PathEscape(linkID), req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *BackendClient) DeleteTrackingLink(ctx context.Context, linkID string) error {
	return c.do(ctx, "links", http.MethodDelete, "/tracking-links/"+url.PathEscape(linkID), nil, nil)
}

func fetchEnvelope[T any](ctx context.Context, c *BackendClient, endpoint, path string) (T, error) {
	var env envelope[T]
	if err := c.do(ctx, endpoint, http.MethodGet, path, nil, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// do sends one request, refreshing the session and retrying once on a 401
func (c *BackendClient) do(ctx context.Context, endpoint, method, path string, body, out any) error {
	start := time.Now()

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			c.metrics.RecordBackendAPIFailure(endpoint, "json_marshal")
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	token := c.currentToken()
	resp, err := c.send(ctx, endpoint, method, path, payload, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.refresh(ctx, token); err != nil {
			c.metrics.RecordBackendAPIFailure(endpoint, "unauthorized")
			return err
		}
		if resp, err = c.send(ctx, endpoint, method, path, payload, c.currentToken()); err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			c.metrics.RecordBackendAPIFailure(endpoint, "unauthorized")
			return domain.ErrUnauthorized
		}
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordBackendAPICall(endpoint, fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return apiError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordBackendAPIFailure(endpoint, "read_body")
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.metrics.RecordBackendAPIFailure(endpoint, "json_parse")
			return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
		}
	}

	c.metrics.RecordBackendAPICall(endpoint, "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"method":   method,
		"path":     path,
		"duration": duration,
	}).Debug("Backend call succeeded")

	return nil
}

func (c *BackendClient) send(ctx context.Context, endpoint, method, path string, payload []byte, token string) (*http.Response, error) {
	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordBackendAPIFailure(endpoint, "rate_limit")
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.metrics.RecordBackendAPIFailure(endpoint, "request_creation")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordBackendAPIFailure(endpoint, "network_error")
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	return resp, nil
}

func (c *BackendClient) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// refresh exchanges the refresh token for a new pair. Callers that saw the
// same stale token share one exchange.
func (c *BackendClient) refresh(ctx context.Context, staleToken string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != staleToken {
		return nil
	}
	if c.refreshToken == "" {
		return domain.ErrUnauthorized
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": c.refreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	resp, err := c.send(ctx, "auth_refresh", http.MethodPost, refreshTokenPath, payload, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithContext(ctx).WithField("status", resp.StatusCode).Warn("Session refresh rejected")
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, apiError(resp))
	}

	var env envelope[tokenPair]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if env.Data.AccessToken == "" {
		return fmt.Errorf("%w: refresh returned no access token", domain.ErrUnauthorized)
	}

	c.accessToken = env.Data.AccessToken
	if env.Data.RefreshToken != "" {
		c.refreshToken = env.Data.RefreshToken
	}

	c.logger.WithContext(ctx).Info("Backend session refreshed")
	return nil
}

// apiError reads the backend's message field, falling back to the status text
func apiError(resp *http.Response) error {
	apiErr := &domain.APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(data, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}

