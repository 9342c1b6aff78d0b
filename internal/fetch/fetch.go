package fetch

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// ErrRateLimited marks a fetch that exhausted its retry budget on HTTP 429.
// Callers treat it like any other per-unit failure: log, skip, continue.
var ErrRateLimited = errors.New("rate limited")

// StatusError is returned for non-2xx, non-throttling responses. These are
// permanent for the resource unit and are never retried.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, body)
}

// Client issues HTTP GETs with a bounded retry on throttling responses.
type Client struct {
	HTTP       *http.Client
	MaxRetries int           // total attempts per URL
	RetryWait  time.Duration // sleep between throttled attempts
	UserAgent  string

	// sleep is swappable in tests.
	sleep func(time.Duration)
}

// NewClient creates a fetch client with optional proxy support.
func NewClient(timeout time.Duration, maxRetries int, retryWait time.Duration, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		MaxRetries: maxRetries,
		RetryWait:  retryWait,
		UserAgent:  "Mozilla/5.0",
		sleep:      time.Sleep,
	}
}

// attemptState is one step of the bounded fetch loop. Every attempt ends in
// either a terminal result or stateWaiting, and the attempt counter only
// moves forward, so the loop cannot spin indefinitely.
type attemptState int

const (
	statePending attemptState = iota
	stateWaiting
)

// Get fetches the URL and returns the response body. A 429 is retried up to
// MaxRetries total attempts with RetryWait between them; on the final
// attempt it is surfaced wrapping ErrRateLimited. Any other non-2xx status
// is returned immediately as a *StatusError.
func (c *Client) Get(rawURL string) ([]byte, error) {
	state := statePending
	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		if state == stateWaiting {
			log.Printf("[WARN] rate limited, waiting %s before retry %d/%d: %s",
				c.RetryWait, attempt, c.MaxRetries, rawURL)
			c.sleep(c.RetryWait)
			state = statePending
		}

		body, throttled, err := c.once(rawURL)
		if err != nil {
			return nil, err
		}
		if !throttled {
			return body, nil
		}
		state = stateWaiting
	}
	return nil, fmt.Errorf("%w after %d attempts: %s", ErrRateLimited, c.MaxRetries, rawURL)
}

// once performs a single GET. throttled=true means the server answered 429
// and the caller may retry; any other failure is final.
func (c *Client) once(rawURL string) (body []byte, throttled bool, err error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, false, nil
}
