// Package apiclient реализует клиент REST API маркетплейса FitPlanHub:
// аутентификацию, профиль, планы, подписки и панель тренера.
//
// Ошибки делятся на три вида: отказ API (*APIError с сообщением из тела),
// недоступность API (ErrTransport) и неразборчивый ответ (ErrMalformed).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
)

const maxBodySize = 4 << 20

// Recorder принимает наблюдения о запросах, реализуется пакетом metrics.
type Recorder interface {
	ObserveRequest(endpoint string, status int, d time.Duration)
}

// Options настройки клиента.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Recorder   Recorder
}

// Client клиент REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	recorder   Recorder
}

// NewClient создаёт клиент. Если HTTPClient не передан, используется клиент
// с таймаутом и транспортом, инструментированным OpenTelemetry.
func NewClient(opts Options) (*Client, error) {
	const op = "apiclient.NewClient"

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%s: base url is required", op)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        logger,
		recorder:   opts.Recorder,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
		reader = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do выполняет запрос и декодирует успешный ответ в out (если out != nil).
func (c *Client) do(ctx context.Context, endpoint, method, path, token string, body, out any) error {
	op := "apiclient." + endpoint

	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log := c.log.With(
		slog.String("op", op),
		slog.String("request_id", req.Header.Get("X-Request-ID")),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0, start)
		log.Warn("api request failed", sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode, start)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr, err := parseAPIError(resp.StatusCode, data)
		if err != nil {
			log.Warn("unreadable error response", slog.Int("status", resp.StatusCode), sl.Err(err))
			return fmt.Errorf("%s: %w: status %d", op, ErrMalformed, resp.StatusCode)
		}
		log.Info("api rejected request", slog.Int("status", resp.StatusCode), slog.String("detail", apiErr.Detail()))
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	log.Debug("api request done", slog.Int("status", resp.StatusCode))
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrMalformed, err)
	}
	return nil
}

func (c *Client) observe(endpoint string, status int, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveRequest(endpoint, status, time.Since(start))
	}
}

// AsAPIError достаёт *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
