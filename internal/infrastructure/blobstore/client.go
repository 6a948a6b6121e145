// Package blobstore talks to the HTTP object bucket that holds uploaded
// match videos. Uploads go through net/http PUT; downloads use fasthttp
// because analysis re-reads the full video and the zero-copy body helps.
package blobstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/glovework/keeper-stats/internal/platform/logging"
	"github.com/glovework/keeper-stats/internal/platform/resilience"
	"github.com/glovework/keeper-stats/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errBlobstoreTransient = crerr.New("blobstore transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	PublicBaseURL  string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	fastClient     *fasthttp.Client
	baseURL        string
	publicBaseURL  string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	publicBaseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if publicBaseURL == "" {
		publicBaseURL = baseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: httpClient,
		fastClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			// Videos run up to the 100 MiB upload cap.
			MaxResponseBodySize: 128 << 20,
		},
		baseURL:        baseURL,
		publicBaseURL:  publicBaseURL,
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// PublicURL returns the browser-facing URL for a stored object key.
func (c *Client) PublicURL(key string) string {
	return c.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}

// Upload streams the object body into a pooled buffer and PUTs it under
// key. Returns the public URL of the stored object.
func (c *Client) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("%w: object key is required", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: blob storage is not configured", usecase.ErrDependencyUnavailable)
	}
	if err := c.allow(ctx); err != nil {
		return "", err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(body); err != nil {
		return "", fmt.Errorf("read upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/"+key, strings.NewReader(buf.String()))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if strings.TrimSpace(contentType) != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.ContentLength = int64(buf.Len())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: upload object key=%s: %v", errBlobstoreTransient, key, err)
		c.recordCircuitResult(callErr)
		return "", callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		callErr := fmt.Errorf("upload object key=%s status=%d body=%s", key, resp.StatusCode, strings.TrimSpace(string(raw)))
		if isRetryableStatus(resp.StatusCode) {
			callErr = fmt.Errorf("%w: %v", errBlobstoreTransient, callErr)
		}
		c.recordCircuitResult(callErr)
		return "", callErr
	}

	c.recordCircuitResult(nil)
	c.logger.InfoContext(ctx, "object uploaded", "key", key, "bytes", buf.Len())
	return c.PublicURL(key), nil
}

// Download fetches the full object body for a stored key.
func (c *Client) Download(ctx context.Context, key string) ([]byte, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return nil, fmt.Errorf("%w: object key is required", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: blob storage is not configured", usecase.ErrDependencyUnavailable)
	}
	if err := c.allow(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/" + key)
	req.Header.SetMethod(fasthttp.MethodGet)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, ctx.Err()
	}

	if err := c.fastClient.DoTimeout(req, resp, timeout); err != nil {
		callErr := fmt.Errorf("%w: download object key=%s: %v", errBlobstoreTransient, key, err)
		c.recordCircuitResult(callErr)
		return nil, callErr
	}

	status := resp.StatusCode()
	if status == http.StatusNotFound {
		c.recordCircuitResult(nil)
		return nil, fmt.Errorf("%w: object key=%s", usecase.ErrNotFound, key)
	}
	if status/100 != 2 {
		callErr := fmt.Errorf("download object key=%s status=%d", key, status)
		if isRetryableStatus(status) {
			callErr = fmt.Errorf("%w: %v", errBlobstoreTransient, callErr)
		}
		c.recordCircuitResult(callErr)
		return nil, callErr
	}

	// resp.Body() is pooled; copy before release.
	body := append([]byte(nil), resp.Body()...)
	c.recordCircuitResult(nil)
	return body, nil
}

// Delete removes a stored object. Missing objects are not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return fmt.Errorf("%w: object key is required", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return fmt.Errorf("%w: blob storage is not configured", usecase.ErrDependencyUnavailable)
	}
	if err := c.allow(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/"+key, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: delete object key=%s: %v", errBlobstoreTransient, key, err)
		c.recordCircuitResult(callErr)
		return callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 && resp.StatusCode != http.StatusNotFound {
		callErr := fmt.Errorf("delete object key=%s status=%d", key, resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			callErr = fmt.Errorf("%w: %v", errBlobstoreTransient, callErr)
		}
		c.recordCircuitResult(callErr)
		return callErr
	}

	c.recordCircuitResult(nil)
	return nil
}

func (c *Client) allow(ctx context.Context) error {
	if !c.circuitEnabled {
		return nil
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "blobstore circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: blob storage is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errBlobstoreTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
