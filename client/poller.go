// Package client is the Go counterpart of the browser session guard: a
// polling loop that keeps asking the backend whether the current session is
// still authoritative, an inactivity timer, and the forced sign-out both
// funnel into.
package client

import (
	"context"
	"net/http"
	"time"
)

// DefaultPollInterval matches the browser guard's 5-second cadence.
const DefaultPollInterval = 5 * time.Second

// Poller periodically hits the validate endpoint with the client's cookie
// jar. The first non-200 answer (or transport error) fires OnInvalid once
// and stops the loop — a stale session never recovers, so there is nothing
// to keep polling for.
type Poller struct {
	Client    *http.Client
	BaseURL   string
	Interval  time.Duration
	OnInvalid func()
}

func NewPoller(client *http.Client, baseURL string, onInvalid func()) *Poller {
	return &Poller{
		Client:    client,
		BaseURL:   baseURL,
		Interval:  DefaultPollInterval,
		OnInvalid: onInvalid,
	}
}

// Run polls until the session goes invalid or the context is cancelled.
// The ticker is released on return.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.checkOnce(ctx) {
				if p.OnInvalid != nil {
					p.OnInvalid()
				}
				return
			}
		}
	}
}

func (p *Poller) checkOnce(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/api/session/validate", nil)
	if err != nil {
		return false
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		// Treat transport failure the way the browser guard does: the
		// session cannot be confirmed, so it is gone.
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
