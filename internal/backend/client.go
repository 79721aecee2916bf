// Package backend is the HTTP client of the external e-commerce backend.
// All data of record lives there; this package only moves it across the
// wire and checks its shape.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultMaxBodyBytes = 8 << 20

// Config параметры подключения к бэкенду
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *slog.Logger
	// MaxBodyBytes caps a response body; larger bodies fail the call.
	MaxBodyBytes int64
}

// Client shared, stateless part of the backend connection. Per-operator
// state lives in Session.
type Client struct {
	base      *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	maxBody   int64
	validate  *validator.Validate
	log       *slog.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base url required")
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	tr := cfg.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}
	return &Client{
		base:      u,
		timeout:   cfg.Timeout,
		transport: otelhttp.NewTransport(tr),
		maxBody:   cfg.MaxBodyBytes,
		validate:  newValidator(),
		log:       l.With("component", "backend"),
	}, nil
}

// NewSession creates an empty operator session. bearer may be empty.
func (c *Client) NewSession(bearer string) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Session{
		client: c,
		bearer: bearer,
		http: &http.Client{
			Transport: c.transport,
			Jar:       jar,
			Timeout:   c.timeout,
		},
	}, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = u.Path + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do executes one request on behalf of s and returns the raw response body.
func (s *Session) do(ctx context.Context, op, method, path string, q url.Values, body any) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &RemoteError{Op: op, Err: err}
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.client.endpoint(path, q), rdr)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.authorize(req)

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		s.client.log.Warn("backend call failed", "op", op, "err", err)
		return nil, &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.client.maxBody+1))
	if err != nil {
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if int64(len(raw)) > s.client.maxBody {
		s.client.log.Warn("backend response too large", "op", op, "limit", s.client.maxBody)
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: "response too large"}
	}
	s.client.log.Debug("backend call", "op", op, "status", resp.StatusCode, "dur_ms", time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusUnauthorized {
		s.clear()
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw), Err: ErrUnauthorized}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	s.captureCSRF(raw)
	return raw, nil
}
