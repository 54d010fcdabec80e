package client

import (
	"context"
	"net/http"
	"time"
)

// DefaultSignOutDelay mirrors the 5-second countdown the signout page shows
// before actually tearing the session down.
const DefaultSignOutDelay = 5 * time.Second

// ForceSignOut waits out the countdown, then posts the logout request so
// the server clears the stored token and expires every session cookie (the
// client's jar drops them on the Set-Cookie responses). Cancelling the
// context skips the wait and the request.
func ForceSignOut(ctx context.Context, client *http.Client, baseURL string, delay time.Duration) error {
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/session/logout", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}
