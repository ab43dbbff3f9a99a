package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mernventory/inventory-api/internal/auth"
	"github.com/mernventory/inventory-api/internal/httputil"
	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/repository"
)

type contextKey struct{}

var currentUserKey = contextKey{}

const msgNotAuthorized = "Not authorized, please login"

// NewAuthenticator returns the middleware guarding protected routes. It
// resolves the session token from the request, verifies it, loads the user it
// names and attaches the user to the request context. Every failure mode
// collapses to the same 401 response so callers cannot distinguish a missing
// token from a bad signature, an expired token or a deleted user.
func NewAuthenticator(
	jwtAuth auth.JWTAuthenticator,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, msgNotAuthorized)
				return
			}

			userID, err := jwtAuth.Verify(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, msgNotAuthorized)
				return
			}

			user, err := userRepo.GetUser(r.Context(), userID)
			if err != nil {
				logger.Debug().Err(err).Str("user_id", userID).Msg("session user lookup failed")
				httputil.RespondError(w, http.StatusUnauthorized, msgNotAuthorized)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user attached by the
// authenticator middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok
}
