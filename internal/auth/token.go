package auth

import (
	"net/http"
	"strings"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "qsid"

func ExtractSessionToken(r *http.Request) string {
	// Cookie (preferred)
	if cookie, err := r.Cookie(CookieName); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	// Authorization header (fallback)
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
