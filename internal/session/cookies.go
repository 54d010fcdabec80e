package session

import "net/http"

// Cookie names follow the secure-prefix convention: the plain name is used
// over HTTP in local dev, the __Secure- variant over TLS. CSRF and callback
// companions ride alongside the artifact and are cleared with it.
const (
	CookieName         = "taskhive.session-token"
	SecureCookieName   = "__Secure-taskhive.session-token"
	CSRFCookieName     = "taskhive.csrf-token"
	SecureCSRFName     = "__Secure-taskhive.csrf-token"
	CallbackCookieName = "taskhive.callback-url"
	SecureCallbackName = "__Secure-taskhive.callback-url"
)

// WriteArtifactCookie stores the signed artifact on the client.
func WriteArtifactCookie(w http.ResponseWriter, cfg Config, artifact string) {
	name := CookieName
	if cfg.SecureCookies {
		name = SecureCookieName
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    artifact,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadArtifact pulls the artifact from the request, preferring the secure
// variant. Empty string when absent.
func ReadArtifact(r *http.Request) string {
	if c, err := r.Cookie(SecureCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// ClearArtifactCookies expires the artifact and its companions, both plain
// and secure-prefixed variants.
func ClearArtifactCookies(w http.ResponseWriter, cfg Config) {
	names := []string{
		CookieName, SecureCookieName,
		CSRFCookieName, SecureCSRFName,
		CallbackCookieName, SecureCallbackName,
	}
	for _, name := range names {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
