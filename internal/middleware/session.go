package middleware

import (
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the name of the HTTP-only cookie carrying the session
// token.
const SessionCookieName = "token"

// tokenExtractor attempts to locate a session token in a request, returning
// the empty string when the request carries none at its source.
type tokenExtractor func(r *http.Request) string

// tokenExtractors is the ordered chain tried on every protected request.
// First non-empty result wins.
var tokenExtractors = []tokenExtractor{
	cookieTokenExtractor,
	bearerTokenExtractor,
}

// ExtractToken resolves a session token from the request via the extractor
// chain. It returns the empty string when neither source is present.
func ExtractToken(r *http.Request) string {
	for _, extract := range tokenExtractors {
		if token := extract(r); token != "" {
			return token
		}
	}
	return ""
}

func cookieTokenExtractor(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func bearerTokenExtractor(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}

// SetSessionCookie delivers a freshly issued session token to the client as
// an HTTP-only, secure, cross-site cookie with the same lifetime as the token.
func SetSessionCookie(w http.ResponseWriter, token string, expiresIn time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(expiresIn),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSessionCookie expires the session cookie immediately. The token itself
// is not revoked server-side: a copy presented via the Authorization header
// stays valid until its expiry.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
