package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/middleware"
)

const apiBasePath = "/api/v1"

// httpClient is the request helper shared by the resource clients. Every
// call is a single round trip with no retry.
type httpClient struct {
	service    string
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *logging.LoggerV2
	metrics    *Metrics
}

func newHTTPClient(cfg config.ServiceConfig, logger *logging.LoggerV2, metrics *Metrics) httpClient {
	return httpClient{
		service: cfg.Name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:  cfg.APIKey,
		logger:  logger,
		metrics: metrics,
	}
}

// do sends body as JSON and decodes the response into out. A 204 or an empty
// body leaves out untouched. Non-2xx responses become *errors.ServiceError.
func (c *httpClient) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiBasePath+path, reader)
	if err != nil {
		return err
	}
	c.setHeaders(ctx, req)

	c.logger.Debug("Calling backend", logging.Fields{
		"service":    c.service,
		"operation":  operation,
		"method":     method,
		"path":       path,
		"request_id": middleware.RequestIDFromContext(ctx),
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(c.service, operation, "error", time.Since(start))
		c.logger.Error("Backend unreachable", logging.Fields{
			"service":   c.service,
			"operation": operation,
			"error":     err.Error(),
		})
		return &errors.TransportError{Service: c.service, Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	c.metrics.observe(c.service, operation, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return &errors.TransportError{Service: c.service, Operation: operation, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := string(payload)
		if message == "" {
			message = statusText(resp)
		}
		c.logger.Warn("Backend rejected request", logging.Fields{
			"service":     c.service,
			"operation":   operation,
			"status_code": resp.StatusCode,
			"message":     message,
		})
		return &errors.ServiceError{
			Service:    c.service,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(payload)) == 0 || out == nil {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", c.service, operation, err)
	}
	return nil
}

func (c *httpClient) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}
}

// statusText returns the reason phrase of the response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return code
}
