// Package tripclient is a Go client for the Trip Journal API.
package tripclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response. It unwraps to the domain sentinel matching
// Code, so callers can use errors.Is(err, domain.ErrAlreadyExists) and friends.
type APIError struct {
	Status    int
	Code      domain.Code
	Message   string
	Conflicts []gen.ConflictSummary
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tripclient: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("tripclient: %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return domain.ErrorForCode(e.Code) }

// Client talks to one API server on behalf of one user.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	dialer  *websocket.Dialer
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout replaces DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	c.dialer = &websocket.Dialer{HandshakeTimeout: c.timeout}
	return c
}

// CheckSlug asks whether slug is free. The answer is advisory.
func (c *Client) CheckSlug(ctx context.Context, slug string) (gen.CheckSlugResponse, error) {
	var out gen.CheckSlugResponse
	err := c.do(ctx, http.MethodPost, "/check-slug", gen.CheckSlugRequest{Slug: slug}, &out)
	if err != nil {
		return gen.CheckSlugResponse{}, fmt.Errorf("tripclient.Client.CheckSlug: %w", err)
	}
	return out, nil
}

// CreateTrip claims slug and stores data as a new trip.
func (c *Client) CreateTrip(ctx context.Context, slug string, data gen.TripData) (gen.CreateTripResponse, error) {
	var out gen.CreateTripResponse
	err := c.do(ctx, http.MethodPost, "/create-trip", gen.CreateTripRequest{Slug: slug, TripData: data}, &out)
	if err != nil {
		return gen.CreateTripResponse{}, fmt.Errorf("tripclient.Client.CreateTrip: %w", err)
	}
	return out, nil
}

// ListTrips returns the caller's trips.
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var out gen.TripList
	if err := c.do(ctx, http.MethodGet, "/trips", nil, &out); err != nil {
		return nil, fmt.Errorf("tripclient.Client.ListTrips: %w", err)
	}
	return api.TripsToDomain(out.Data), nil
}

// Search returns one page of public trips whose title starts with q.
func (c *Client) Search(ctx context.Context, q string, page, limit int) ([]domain.Trip, error) {
	v := url.Values{"q": {q}}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out gen.TripList
	if err := c.do(ctx, http.MethodGet, "/search?"+v.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("tripclient.Client.Search: %w", err)
	}
	return api.TripsToDomain(out.Data), nil
}

// WatchTrips streams the caller's trip list: fn is called with the current
// list on connect and again after every change. It blocks until ctx is done
// (returning ctx.Err()) or the connection fails.
func (c *Client) WatchTrips(ctx context.Context, fn func(event string, trips []domain.Trip)) error {
	u, err := url.Parse(c.baseURL + "/trips/live")
	if err != nil {
		return fmt.Errorf("tripclient.Client.WatchTrips: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return fmt.Errorf("tripclient.Client.WatchTrips: %w", decodeError(resp))
		}
		return fmt.Errorf("tripclient.Client.WatchTrips: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var msg gen.FeedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("tripclient.Client.WatchTrips: %w", err)
		}
		fn(msg.Event, api.TripsToDomain(msg.Trips))
	}
}

// do sends one JSON request and decodes a 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError turns an error response into an *APIError. Bodies that are not
// the API's error shape still yield an APIError carrying the status.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: domain.CodeInternal}
	var body gen.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Code = domain.Code(body.Error)
		apiErr.Message = body.Message
		apiErr.Conflicts = body.Conflicts
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
