package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Profile is what the provider vouches for. The provider already verified
// the credential; the backend only maps the identity onto an account.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

var ErrProviderRejected = errors.New("provider rejected token")

// ProfileFetcher turns a provider access token into a verified profile.
type ProfileFetcher interface {
	Fetch(accessToken string) (*Profile, error)
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleFetcher resolves profiles against Google's userinfo endpoint.
type GoogleFetcher struct {
	Client *http.Client
}

func NewGoogleFetcher() *GoogleFetcher {
	return &GoogleFetcher{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (g *GoogleFetcher) Fetch(accessToken string) (*Profile, error) {
	req, err := http.NewRequest(http.MethodGet, googleUserinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrProviderRejected
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if profile.Email == "" {
		return nil, ErrProviderRejected
	}

	return &profile, nil
}
