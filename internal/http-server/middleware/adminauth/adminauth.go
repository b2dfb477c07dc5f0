package adminauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/lib/session"

	"github.com/go-chi/render"
)

type ctxKey struct{}

type TokenParser interface {
	Parse(token string) (*session.Claims, error)
}

// ClaimsFromContext returns the session claims stored by New or Optional.
func ClaimsFromContext(ctx context.Context) (*session.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*session.Claims)
	return c, ok
}

// New rejects requests that do not carry a valid admin session.
func New(log *slog.Logger, parser TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/adminauth"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing authorization header"))
				return
			}

			claims, err := parser.Parse(token)
			if err != nil {
				log.Info("rejected session token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			if claims.Role != session.RoleAdmin {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin role required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		}

		return http.HandlerFunc(fn)
	}
}

// Optional attaches the session claims when a valid token is present and
// lets every request through.
func Optional(parser TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := parser.Parse(token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims))
				}
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}

	return strings.TrimSpace(parts[1]), true
}
