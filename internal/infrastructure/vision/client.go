// Package vision calls the hosted vision-model API that turns a match
// video into free-text analysis. The response is raw model text; JSON
// extraction happens downstream in the videoanalysis domain.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/glovework/keeper-stats/internal/platform/logging"
	"github.com/glovework/keeper-stats/internal/platform/resilience"
	"github.com/glovework/keeper-stats/internal/usecase"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 120 * time.Second
	maxResponse    = 6 << 20
)

var keyParamRegex = regexp.MustCompile(`key=[^&\s"']+`)
var errVisionTransient = crerr.New("vision transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// generateContent request/response shapes, trimmed to the fields we use.
type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze submits the video bytes inline with the analysis prompt and
// returns the model's free text. Concurrent calls for the same video id
// collapse to one upstream request.
func (c *Client) Analyze(ctx context.Context, videoID string, video []byte, mimeType string) (string, error) {
	if strings.TrimSpace(videoID) == "" {
		return "", fmt.Errorf("%w: video id is required", usecase.ErrInvalidInput)
	}
	if len(video) == 0 {
		return "", fmt.Errorf("%w: video payload is empty", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: vision provider is not configured", usecase.ErrDependencyUnavailable)
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "video/mp4"
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "vision circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: vision provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	payload := generateRequest{
		Contents: []requestContent{{
			Parts: []requestPart{
				{Text: AnalysisPrompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(video),
				}},
			},
		}},
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode inference request: %w", err)
	}

	fullURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	out, err, _ := c.flight.Do("analyze:"+videoID, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, body)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errVisionTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return "", err
	}

	raw, ok := out.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected response payload type %T", out)
	}

	var decoded generateResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}

	text := collectCandidateText(decoded)
	if text == "" {
		return "", fmt.Errorf("inference response contained no text candidates")
	}
	return text, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errVisionTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errVisionTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errVisionTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "vision request failed", "url", redactKeyURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func collectCandidateText(decoded generateResponse) string {
	parts := make([]string, 0, 4)
	for _, candidate := range decoded.Candidates {
		for _, part := range candidate.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return keyParamRegex.ReplaceAllString(value, "key=REDACTED")
}

func redactKeyURL(fullURL string) string {
	return keyParamRegex.ReplaceAllString(fullURL, "key=REDACTED")
}

func abbreviateBody(raw []byte) string {
	const limit = 300
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
