// Package upstream is the client for the persistence API that owns all
// budget data.
//
// The client is a thin request/response wrapper: it never interprets the
// numbers it transports. Amounts cross the boundary as decimal strings
// and dates as YYYY-MM-DD calendar strings, both enforced by the money
// and types packages' JSON codecs.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bufferbudget/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when the upstream API has no resource for the
// request, e.g. a month without a budget.
var ErrNotFound = errors.New("not found upstream")

// Error is a non-2xx response from the upstream API.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Client talks to the upstream persistence API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for the API at baseURL. The token is sent as a
// bearer token on every request.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// monthQuery encodes a month the way the upstream API expects it: a
// zero-based month index and a year.
func monthQuery(month types.Month) url.Values {
	start := month.Start()

	query := url.Values{}
	query.Set("month", strconv.Itoa(int(start.Month())-1))
	query.Set("year", strconv.Itoa(start.Year()))

	return query
}

// do runs one request against the upstream API and decodes the response
// body into out, when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug().Str("method", method).Str("path", path).Msg("upstream request")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return &Error{StatusCode: res.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding upstream response: %w", err)
	}

	return nil
}
