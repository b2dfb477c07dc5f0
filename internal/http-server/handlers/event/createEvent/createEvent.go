package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type EventRequest struct {
	Name           string    `json:"name" validate:"required"`
	StartDate      time.Time `json:"application_start_date" validate:"required"`
	EndDate        time.Time `json:"application_end_date" validate:"required,gtefield=StartDate"`
	ManuallyClosed bool      `json:"is_manually_closed"`
}

func (req EventRequest) Input() storage.EventInput {
	return storage.EventInput{
		Name:           strings.TrimSpace(req.Name),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		ManuallyClosed: req.ManuallyClosed,
	}
}

type EventResponse struct {
	response.Response
	EventId string `json:"event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, in storage.EventInput) (string, error)
}

func New(log *slog.Logger, event EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		req.Name = strings.TrimSpace(req.Name)

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		eventId, err := event.CreateEvent(r.Context(), req.Input())
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			code, resp := response.FromBackend("failed to add event", err)
			render.Status(r, code)
			render.JSON(w, r, resp)

			return
		}

		log.Info("event added", slog.String("id", eventId))

		responseOK(w, r, eventId)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventId string) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventId:  eventId,
	})
}
