package getSummary

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/lib/summary"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/go-chi/render"
)

type SummaryResponse struct {
	response.Response
	Summary summary.Summary `json:"summary"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DashboardGetter
type DashboardGetter interface {
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	GetApplications(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error)
}

func New(log *slog.Logger, dashboard DashboardGetter, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.getSummary.New"

		eventID := strings.TrimSpace(r.URL.Query().Get("event_id"))

		log := log.With(slog.String("op", op), slog.String("event_id", eventID))

		events, err := dashboard.GetAllEvents(r.Context())
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			code, resp := response.FromBackend("failed to get events", err)
			render.Status(r, code)
			render.JSON(w, r, resp)
			return
		}

		// per-event counts need every application, the event filter is applied while aggregating
		apps, err := dashboard.GetApplications(r.Context(), storage.ApplicationFilter{})
		if err != nil {
			log.Error("failed to get applications", sl.Err(err))
			code, resp := response.FromBackend("failed to get applications", err)
			render.Status(r, code)
			render.JSON(w, r, resp)
			return
		}

		s := summary.Build(events, apps, eventID, now())

		log.Info("summary built",
			slog.Int("applications", s.TotalApplications),
			slog.Int("open_events", s.OpenEvents),
		)

		render.JSON(w, r, SummaryResponse{
			Response: response.OK(),
			Summary:  s,
		})
	}
}
