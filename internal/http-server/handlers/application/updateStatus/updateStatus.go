package updateStatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type StatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=approved rejected"`
}

type StatusResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusUpdater
type StatusUpdater interface {
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}

// New records an approve or reject decision. The reply carries no record;
// clients re-fetch the list to see the new status.
func New(log *slog.Logger, applications StatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.application.updateStatus.New"

		log := log.With(slog.String("op", op))

		appID := chi.URLParam(r, "id")
		if appID == "" {
			log.Error("application id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("application id is required"))
			return
		}

		log = log.With(slog.String("application_id", appID))

		var req StatusRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		err = applications.UpdateApplicationStatus(r.Context(), appID, req.Status)
		if err != nil {
			log.Error("failed to update status", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrApplicationNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("application not found"))
			case errors.Is(err, storage.ErrStatusNotPending):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("application has already been reviewed"))
			default:
				code, resp := response.FromBackend("failed to update status", err)
				render.Status(r, code)
				render.JSON(w, r, resp)
			}
			return
		}

		log.Info("application status updated", slog.String("status", string(req.Status)))

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, StatusResponse{
		Response: response.OK(),
	})
}
