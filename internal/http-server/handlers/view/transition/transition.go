package transition

import (
	"errors"
	"log/slog"
	"net/http"

	"eventRegistry/internal/http-server/middleware/adminauth"
	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/lib/view"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type TransitionRequest struct {
	From   view.View   `json:"from" validate:"required"`
	Action view.Action `json:"action" validate:"required"`
	Target view.View   `json:"target"`
}

type TransitionResponse struct {
	response.Response
	view.State
}

// New resolves the next view. Whether the caller is logged in is taken
// from the session attached by adminauth.Optional, never from the body.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.view.transition.New"

		log := log.With(slog.String("op", op))

		var req TransitionRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		_, loggedIn := adminauth.ClaimsFromContext(r.Context())

		// logging in is only confirmed by a session issued by the login endpoint
		if req.Action == view.ActionLogin && !loggedIn {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("login required"))
			return
		}

		current := view.State{Current: req.From, LoggedIn: loggedIn}

		next, err := current.Apply(req.Action, req.Target)
		if err != nil {
			log.Info("transition refused", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.JSON(w, r, TransitionResponse{
			Response: response.OK(),
			State:    next,
		})
	}
}
