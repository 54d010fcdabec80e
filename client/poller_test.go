package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TaskHive/TH-Backend/client"
)

// validateServer fakes the validate endpoint: it answers 200 until invalid
// is flipped, then 401.
func validateServer(invalid *atomic.Bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/session/validate" {
			http.NotFound(w, r)
			return
		}
		if invalid.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

// TestPoller_FiresOnInvalidOnceAndStops verifies that the first rejected
// poll fires OnInvalid exactly once and ends the loop.
func TestPoller_FiresOnInvalidOnceAndStops(t *testing.T) {
	var invalid atomic.Bool
	srv := validateServer(&invalid)
	defer srv.Close()

	var fired atomic.Int32
	p := client.NewPoller(srv.Client(), srv.URL, func() { fired.Add(1) })
	p.Interval = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	// Let a few healthy polls go through, then kill the session.
	time.Sleep(50 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatal("OnInvalid fired while the session was still valid")
	}
	invalid.Store(true)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after the session went invalid")
	}
	if got := fired.Load(); got != 1 {
		t.Errorf("expected OnInvalid to fire once, fired %d times", got)
	}
}

// TestPoller_ContextCancelStopsWithoutFiring verifies that cancellation is
// a clean shutdown, not a sign-out.
func TestPoller_ContextCancelStopsWithoutFiring(t *testing.T) {
	var invalid atomic.Bool
	srv := validateServer(&invalid)
	defer srv.Close()

	var fired atomic.Int32
	p := client.NewPoller(srv.Client(), srv.URL, func() { fired.Add(1) })
	p.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop on context cancel")
	}
	if fired.Load() != 0 {
		t.Errorf("OnInvalid fired on cancellation: %d times", fired.Load())
	}
}

// TestPoller_TransportErrorCountsAsInvalid verifies that an unreachable
// backend ends the session client-side rather than polling forever.
func TestPoller_TransportErrorCountsAsInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close() // gone before the first poll

	var fired atomic.Int32
	p := client.NewPoller(http.DefaultClient, srv.URL, func() { fired.Add(1) })
	p.Interval = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop when the backend was unreachable")
	}
	if got := fired.Load(); got != 1 {
		t.Errorf("expected OnInvalid once, fired %d times", got)
	}
}
