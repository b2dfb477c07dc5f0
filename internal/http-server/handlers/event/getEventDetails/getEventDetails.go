package getEventDetails

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/lib/summary"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type EventDetailsResponse struct {
	response.Response
	Event        models.EventView     `json:"event"`
	Applications []models.Application `json:"applications"`
	AvgGroupSize float64              `json:"avg_group_size"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventDetailsGetter
type EventDetailsGetter interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetApplications(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error)
}

// New serves the admin view of one event together with its applications.
func New(log *slog.Logger, details EventDetailsGetter, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventDetails.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		event, err := details.GetEvent(r.Context(), eventID)
		if err != nil {
			log.Error("failed to get event", sl.Err(err))

			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			code, resp := response.FromBackend("failed to get event", err)
			render.Status(r, code)
			render.JSON(w, r, resp)
			return
		}

		apps, err := details.GetApplications(r.Context(), storage.ApplicationFilter{EventID: eventID})
		if err != nil {
			log.Error("failed to get applications", sl.Err(err))
			code, resp := response.FromBackend("failed to get applications", err)
			render.Status(r, code)
			render.JSON(w, r, resp)
			return
		}

		var groupTotal int
		for _, a := range apps {
			groupTotal += a.GroupSize
		}

		log.Info("event details received", slog.Int("applications", len(apps)))

		render.JSON(w, r, EventDetailsResponse{
			Response:     response.OK(),
			Event:        models.NewEventView(*event, now()),
			Applications: apps,
			AvgGroupSize: summary.AverageGroupSize(groupTotal, len(apps)),
		})
	}
}
