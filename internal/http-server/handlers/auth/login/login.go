package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventRegistry/internal/auth"
	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/lib/session"
	"eventRegistry/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (req LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", req.Email))
}

type LoginResponse struct {
	response.Response
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Authenticator
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (auth.Identity, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RoleGetter
type RoleGetter interface {
	GetUserRole(ctx context.Context, userID, accessToken string) (string, error)
}

type SessionIssuer interface {
	Issue(userID, email, role string) (string, time.Time, error)
}

// New signs an administrator in. Credentials are checked by the auth
// service and the role comes from the users table; only admins get a session.
func New(log *slog.Logger, authenticator Authenticator, roles RoleGetter, sessions SessionIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log := log.With(slog.String("op", op))

		var req LoginRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		identity, err := authenticator.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			log.Error("sign in failed", sl.Err(err))

			var svcErr *storage.ServiceError
			switch {
			case errors.As(err, &svcErr) && svcErr.StatusCode < http.StatusInternalServerError:
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("login failed: "+svcErr.Message))
			case errors.Is(err, auth.ErrNoUser):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("login failed: no user returned"))
			default:
				code, resp := response.FromBackend("login failed", err)
				render.Status(r, code)
				render.JSON(w, r, resp)
			}
			return
		}

		log = log.With(slog.String("user_id", identity.UserID))

		role, err := roles.GetUserRole(r.Context(), identity.UserID, identity.AccessToken)
		if err != nil || role != session.RoleAdmin {
			if err != nil {
				log.Error("role lookup failed", sl.Err(err))
			}
			log.Info("access denied", slog.String("role", role))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("you are not authorized as an admin"))
			return
		}

		token, expiresAt, err := sessions.Issue(identity.UserID, identity.Email, role)
		if err != nil {
			log.Error("failed to issue session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to issue session"))
			return
		}

		log.Info("admin logged in")

		render.JSON(w, r, LoginResponse{
			Response:  response.OK(),
			Token:     token,
			ExpiresAt: expiresAt,
		})
	}
}
