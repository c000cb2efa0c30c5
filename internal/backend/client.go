// Package backend implements the HTTP adapters for the external ticketing
// platform. It is the parse-and-normalize boundary: responses may be JSON or
// plain text, the body is read exactly once, and non-2xx status is always an
// error regardless of body content. Nothing past this package sees a raw
// backend shape.
package backend

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

	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/api/metrics"
)

const defaultTimeout = 10 * time.Second

type bearerKey struct{}

// WithBearer returns a context carrying the session's backend token. Every
// request made with that context sends it as an Authorization header. The
// adapters only read the token; the session store is its sole owner.
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerKey{}, token)
}

func bearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

// Client is the shared HTTP core of all backend adapters.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the given base URL. A default timeout is
// applied when none is provided.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// response holds the single read of a backend response body.
type response struct {
	status int
	body   []byte
}

// ok reports whether the status is 2xx.
func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// decode attempts a JSON parse of the body into v. An empty body is not an
// error: v is left at its zero value.
func (r *response) decode(v any) error {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	return json.Unmarshal(r.body, v)
}

// message extracts a human-readable message from the body: the "message" or
// "error" field of a JSON object, the trimmed text otherwise.
func (r *response) message() string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(r.body))
}

// errorMessage is message() with an HTTP status fallback for empty bodies.
func (r *response) errorMessage() string {
	if msg := r.message(); msg != "" {
		return msg
	}
	return fmt.Sprintf("error %d: %s", r.status, http.StatusText(r.status))
}

// do performs one request against the backend. The endpoint label names the
// logical operation for metrics; path is the concrete URL path with query.
func (c *Client) do(ctx context.Context, method, endpoint, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := bearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "unreachable").Inc()
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("backend unreachable")
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "read_error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	metrics.BackendRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(res.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	c.log.Debug().
		Str("endpoint", endpoint).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	return &response{status: res.StatusCode, body: raw}, nil
}

// flexString decodes a JSON value that may arrive as a string or a number.
// Backend revisions disagree on identifier types.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
