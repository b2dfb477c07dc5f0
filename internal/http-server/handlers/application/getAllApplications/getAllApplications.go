package getAllApplications

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type ApplicationsResponse struct {
	response.Response
	Applications []models.Application `json:"applications"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ApplicationsGetter
type ApplicationsGetter interface {
	GetApplications(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error)
}

// New lists applications, newest first. The event_id query parameter
// narrows the list to one event.
func New(log *slog.Logger, applications ApplicationsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.application.getAllApplications.New"

		filter := storage.ApplicationFilter{
			EventID: strings.TrimSpace(r.URL.Query().Get("event_id")),
		}

		log := log.With(slog.String("op", op), slog.String("event_id", filter.EventID))

		if filter.EventID != "" {
			if _, err := uuid.Parse(filter.EventID); err != nil {
				log.Error("invalid event id", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("event_id is not a valid id"))
				return
			}
		}

		apps, err := applications.GetApplications(r.Context(), filter)
		if err != nil {
			log.Error("failed to get applications", sl.Err(err))
			code, resp := response.FromBackend("failed to get applications", err)
			render.Status(r, code)
			render.JSON(w, r, resp)
			return
		}

		log.Info("applications retrieved successfully", slog.Int("count", len(apps)))

		if apps == nil {
			apps = []models.Application{}
		}

		render.JSON(w, r, ApplicationsResponse{
			Response:     response.OK(),
			Applications: apps,
		})
	}
}
