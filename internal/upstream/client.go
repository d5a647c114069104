// Package upstream talks to the admin API that owns chats and statistics.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sidebard/internal/models"
	"sidebard/internal/providers"
	"sidebard/internal/structures"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	OpTakeover   = "takeover"
	OpFindToday  = "find_today"
	maxBodyBytes = 1 << 20
)

var ErrUpstreamStatus = errors.New("unexpected upstream status")

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrUpstreamStatus, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

type AdminClientInterface interface {
	SetTakeover(ctx context.Context, chatID int64, value bool) (*models.TakeoverResult, error)
	FindToday(ctx context.Context, chatID int64, status models.VerificationStatus) (*models.TodayStatistics, error)
}

type AdminClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewAdminClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) AdminClientInterface {
	timeout := conf.Upstream.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if conf.Upstream.RateLimit > 0 {
		limit = rate.Limit(conf.Upstream.RateLimit)
	}
	burst := max(conf.Upstream.Burst, 1)

	return &AdminClient{
		baseURL: strings.TrimRight(conf.Upstream.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		metrics: metrics,
	}
}

// TakeoverPath is the request path of the takeover mutation.
func TakeoverPath(chatID int64, value bool) string {
	return "/admin/api/chats/" + strconv.FormatInt(chatID, 10) + "/takeover?value=" + strconv.FormatBool(value)
}

// TodayStatisticsPath is the request path of the daily statistics lookup.
// An empty status asks for every status at once.
func TodayStatisticsPath(chatID int64, status models.VerificationStatus) string {
	q := url.Values{}
	q.Set("chat_id", strconv.FormatInt(chatID, 10))
	if status != "" {
		q.Set("status", string(status))
	}
	return "/admin/api/statistics/find_today?" + q.Encode()
}

func (c *AdminClient) SetTakeover(ctx context.Context, chatID int64, value bool) (*models.TakeoverResult, error) {
	code, body, err := c.do(ctx, OpTakeover, http.MethodPut, TakeoverPath(chatID, value))
	if err != nil {
		return nil, err
	}

	result, decodeErr := decodeTakeover(body)
	if code < 200 || code >= 300 {
		if decodeErr == nil && len(result.Errors) > 0 {
			return result, nil
		}
		c.metrics.IncUpstreamErrors(OpTakeover)
		return nil, &StatusError{Code: code, Body: truncate(body)}
	}
	if decodeErr != nil {
		c.metrics.IncUpstreamErrors(OpTakeover)
		return nil, fmt.Errorf("decode takeover response: %w", decodeErr)
	}
	if len(result.Errors) == 0 && result.Chat == nil {
		c.metrics.IncUpstreamErrors(OpTakeover)
		return nil, errors.New("takeover response carries neither errors nor chat")
	}
	return result, nil
}

func (c *AdminClient) FindToday(ctx context.Context, chatID int64, status models.VerificationStatus) (*models.TodayStatistics, error) {
	code, body, err := c.do(ctx, OpFindToday, http.MethodGet, TodayStatisticsPath(chatID, status))
	if err != nil {
		return nil, err
	}
	if code < 200 || code >= 300 {
		c.metrics.IncUpstreamErrors(OpFindToday)
		return nil, &StatusError{Code: code, Body: truncate(body)}
	}

	normalized, err := Camelize(body)
	if err != nil {
		c.metrics.IncUpstreamErrors(OpFindToday)
		return nil, fmt.Errorf("decode statistics response: %w", err)
	}
	var stats models.TodayStatistics
	if err := json.Unmarshal(normalized, &stats); err != nil {
		c.metrics.IncUpstreamErrors(OpFindToday)
		return nil, fmt.Errorf("decode statistics response: %w", err)
	}
	return &stats, nil
}

func (c *AdminClient) do(ctx context.Context, op, method, path string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%s: rate limiter: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveUpstreamDuration(op, time.Since(start))
	if err != nil {
		c.metrics.IncUpstreamErrors(op)
		c.logger.Warnf(providers.TypeApp, "%s %s failed: %s", method, path, err)
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.IncUpstreamErrors(op)
		return 0, nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	c.logger.Debugf(providers.TypeApp, "%s %s -> %d", method, path, resp.StatusCode)
	return resp.StatusCode, body, nil
}

type rawTakeoverResult struct {
	Errors []json.RawMessage `json:"errors"`
	Chat   *models.Chat      `json:"chat"`
}

func decodeTakeover(body []byte) (*models.TakeoverResult, error) {
	normalized, err := Camelize(body)
	if err != nil {
		return nil, err
	}
	var raw rawTakeoverResult
	if err := json.Unmarshal(normalized, &raw); err != nil {
		return nil, err
	}
	result := &models.TakeoverResult{Chat: raw.Chat}
	for _, e := range raw.Errors {
		result.Errors = append(result.Errors, errorText(e))
	}
	return result, nil
}

// errorText flattens one entry of an errors array: strings as-is, objects by
// their "message" field, anything else as raw JSON.
func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(bytes.TrimSpace(raw))
}

func truncate(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
