package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shuul-console/internal/metrics"
)

// Client talks to the Shuul backend. Requests are built as
// <baseURL>/api/v1/<endpoint>. Every call returns an Envelope rather
// than a Go error so callers have exactly one failure channel: a transport
// or parse failure is folded into a status-500 envelope with an "Error: ..."
// message, and a non-2xx HTTP response yields the server's own message when
// the body parses, or a synthesized "HTTP <code> - <statusText>" when it
// does not.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// LoadData performs a GET against endpoint with the given query parameters.
func (c *Client) LoadData(ctx context.Context, token, endpoint string, params Params) Envelope {
	return c.do(ctx, token, http.MethodGet, endpoint, params, nil)
}

// Create POSTs body (the declared fields of a draft) to endpoint.
func (c *Client) Create(ctx context.Context, token, endpoint string, body any) Envelope {
	return c.do(ctx, token, http.MethodPost, endpoint, nil, body)
}

// Update PATCHes the full draft, id included, to endpoint.
func (c *Client) Update(ctx context.Context, token, endpoint string, body any) Envelope {
	return c.do(ctx, token, http.MethodPatch, endpoint, nil, body)
}

// Delete issues DELETE endpoint?id=<id>.
func (c *Client) Delete(ctx context.Context, token, endpoint string, id any) Envelope {
	return c.do(ctx, token, http.MethodDelete, endpoint, Params{{Key: "id", Value: id}}, nil)
}

// Read issues GET endpoint?id=<id> for a single item.
func (c *Client) Read(ctx context.Context, token, endpoint string, id any) Envelope {
	return c.do(ctx, token, http.MethodGet, endpoint, Params{{Key: "id", Value: id}}, nil)
}

// Login exchanges credentials for a token envelope. No bearer header is
// attached.
func (c *Client) Login(ctx context.Context, email, password string) Envelope {
	return c.do(ctx, "", http.MethodPost, "auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) do(ctx context.Context, token, method, endpoint string, params Params, body any) Envelope {
	u := c.baseURL + "/api/v1/" + strings.TrimLeft(endpoint, "/")
	if q := params.Encode(); q != "" {
		u += "?" + q
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.failure(endpoint, method, fmt.Errorf("encoding request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return c.failure(endpoint, method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, method, "error").Inc()
		return c.failure(endpoint, method, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestDuration.WithLabelValues(endpoint, method).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failure(endpoint, method, err)
	}

	var envelope Envelope
	parseErr := json.Unmarshal(raw, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := envelope.Message
		if parseErr != nil || message == "" {
			message = fmt.Sprintf("HTTP %d - %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		c.logger.Warn("upstream request failed",
			"endpoint", endpoint, "method", method,
			"status", resp.StatusCode, "message", message)
		return Envelope{Status: resp.StatusCode, Message: message}
	}

	if parseErr != nil {
		return c.failure(endpoint, method, fmt.Errorf("decoding response: %w", parseErr))
	}
	if envelope.Status == 0 {
		envelope.Status = resp.StatusCode
	}
	return envelope
}

func (c *Client) failure(endpoint, method string, err error) Envelope {
	c.logger.Error("upstream request error", "endpoint", endpoint, "method", method, "error", err)
	return Envelope{Status: http.StatusInternalServerError, Message: "Error: " + err.Error()}
}
