package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/service/auth"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// AuthPathSegment marks the public authentication endpoints the guard skips.
const AuthPathSegment = "/api/auth"

const bearerPrefix = "Bearer "

// TokenGuard establishes the request identity from a bearer token.
//
// The guard never rejects a request. A missing, malformed, expired or
// otherwise unusable token leaves the request without an identity, and
// RequireAuthenticated decides what to do with it.
type TokenGuard struct {
	codec    auth.TokenCodec
	users    store.UserStore
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewTokenGuard creates a TokenGuard with the given dependencies.
func NewTokenGuard(codec auth.TokenCodec, users store.UserStore, log *slog.Logger) *TokenGuard {
	if codec == nil || users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("token codec and user store are required for TokenGuard")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TokenGuard{
		codec:    codec,
		users:    users,
		logger:   log.With(slog.String("component", "token_guard")),
		timeFunc: time.Now,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds the identity of its subject to the request context.
func (g *TokenGuard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, AuthPathSegment) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := shared.GetIdentity(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		log := logger.FromContextOrDefault(ctx, g.logger)

		claims, err := g.codec.Verify(ctx, strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			log.Debug("ignoring unusable bearer token", slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}
		if claims.Subject == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := g.users.GetByUsername(ctx, claims.Subject)
		if err != nil {
			if store.IsNotFoundError(err) {
				log.Debug("token subject has no account")
			} else {
				log.Warn("failed to load token subject", slog.String("error", redact.Error(err)))
			}
			next.ServeHTTP(w, r)
			return
		}

		if claims.Subject != user.Username || claims.IsExpired(g.timeFunc()) {
			log.Debug("token rejected for subject", slog.Int64("user_id", user.ID))
			next.ServeHTTP(w, r)
			return
		}

		ctx = shared.WithIdentity(ctx, &shared.Identity{
			UserID:      user.ID,
			Username:    user.Username,
			Authorities: user.Authorities(),
		})
		ctx = logger.WithLogger(ctx, log.With(slog.Int64("user_id", user.ID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated rejects requests that carry no identity with 401.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.GetIdentity(r.Context()); !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.ErrorBody{
				Error:   "Unauthorized",
				Message: "Unauthorized",
			}, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
