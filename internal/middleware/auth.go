package middleware

import (
	"net/http"

	"quiltshop-be/internal/auth"
	"quiltshop-be/internal/user"
	"quiltshop-be/internal/utils"
)

// IdentityMiddleware derives the request identity from the session cookie or
// bearer header. A missing, malformed or expired token degrades silently to
// anonymous; route guards enforce authentication separately.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractSessionToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.WithIdentity(r.Context(), auth.Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole is the single capability check applied to protected route
// groups: 401 when anonymous, 403 when the role is insufficient. RoleUser
// admits any authenticated identity.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFrom(r.Context())
			if !ok {
				utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if role == auth.RoleAdmin && !id.IsAdmin() {
				utils.WriteJSONError(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
