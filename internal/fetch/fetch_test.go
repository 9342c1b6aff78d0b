package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(maxRetries int) (*Client, *int) {
	slept := 0
	c := NewClient(5*time.Second, maxRetries, 42*time.Second, "")
	c.sleep = func(d time.Duration) {
		if d != 42*time.Second {
			panic("unexpected sleep duration")
		}
		slept++
	}
	return c, &slept
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(3)
	body, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestGet_AlwaysThrottled_ExhaustsExactlyMaxAttempts(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, slept := newTestClient(3)
	_, err := c.Get(srv.URL)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if hits != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", hits)
	}
	// Sleeps happen between attempts, not after the last one.
	if *slept != 2 {
		t.Errorf("expected 2 retry sleeps, got %d", *slept)
	}
}

func TestGet_ThrottledThenSuccess(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	c, slept := newTestClient(3)
	body, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "data" {
		t.Errorf("unexpected body: %s", body)
	}
	if hits != 2 || *slept != 1 {
		t.Errorf("expected 2 attempts and 1 sleep, got %d/%d", hits, *slept)
	}
}

func TestGet_ServerError_NoRetry(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, slept := newTestClient(4)
	_, err := c.Get(srv.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("unexpected status code: %d", se.Code)
	}
	if hits != 1 || *slept != 0 {
		t.Errorf("5xx must not be retried: %d attempts, %d sleeps", hits, *slept)
	}
}

func TestPacer_FirstCallDoesNotWait(t *testing.T) {
	waits := 0
	p := NewPacer(15 * time.Second)
	p.sleep = func(time.Duration) { waits++ }

	p.Wait()
	if waits != 0 {
		t.Fatal("first Wait must not sleep")
	}
	p.Wait()
	p.Wait()
	if waits != 2 {
		t.Errorf("expected 2 sleeps after 3 units, got %d", waits)
	}
}
