package createApplication

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventRegistry/internal/lib/api/response"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ApplicationRequest struct {
	EventID          string   `json:"event_id" validate:"required,uuid"`
	ProjectName      string   `json:"project_name" validate:"required"`
	University       string   `json:"university" validate:"required"`
	GroupSize        int      `json:"group_size,omitempty"`
	Members          []string `json:"full_names" validate:"required,min=1,dive,required"`
	LeaderEmail      string   `json:"group_leader_email" validate:"required,email"`
	LeaderPhone      string   `json:"group_leader_phone" validate:"required"`
	ProblemStatement string   `json:"problem_statement"`
	Solution         string   `json:"solution"`
}

func (req *ApplicationRequest) normalize() {
	req.EventID = strings.TrimSpace(req.EventID)
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	req.University = strings.TrimSpace(req.University)
	req.LeaderEmail = strings.TrimSpace(req.LeaderEmail)
	req.LeaderPhone = strings.TrimSpace(req.LeaderPhone)
	for i, m := range req.Members {
		req.Members[i] = strings.TrimSpace(m)
	}
}

type ApplicationResponse struct {
	response.Response
	ApplicationID string `json:"application_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ApplicationCreator
type ApplicationCreator interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateApplication(ctx context.Context, in storage.ApplicationInput) (string, error)
}

// New handles a team registration. Incomplete input is rejected before
// any backend call; the selected event has to be open.
func New(log *slog.Logger, applications ApplicationCreator, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.application.createApplication.New"

		log := log.With(slog.String("op", op))

		var req ApplicationRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		req.normalize()

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		if req.GroupSize != 0 && req.GroupSize != len(req.Members) {
			log.Error("group size mismatch", slog.Int("group_size", req.GroupSize), slog.Int("members", len(req.Members)))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("group_size must equal the number of members"))
			return
		}

		log = log.With(slog.String("event_id", req.EventID))

		event, err := applications.GetEvent(r.Context(), req.EventID)
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

		if status := event.StatusAt(now()); status != models.EventOpen {
			log.Info("registration refused", slog.String("event_status", string(status)))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("event is not open for registration"))
			return
		}

		appID, err := applications.CreateApplication(r.Context(), storage.ApplicationInput{
			EventID:          req.EventID,
			ProjectName:      req.ProjectName,
			University:       req.University,
			Members:          models.Members(req.Members),
			LeaderEmail:      req.LeaderEmail,
			LeaderPhone:      req.LeaderPhone,
			ProblemStatement: req.ProblemStatement,
			Solution:         req.Solution,
		})
		if err != nil {
			log.Error("failed to submit registration", sl.Err(err))

			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			code, resp := response.FromBackend("failed to submit registration", err)
			render.Status(r, code)
			render.JSON(w, r, resp)
			return
		}

		log.Info("registration submitted", slog.String("application_id", appID), slog.Int("group_size", len(req.Members)))

		responseOK(w, r, appID)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, appID string) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ApplicationResponse{
		Response:      response.OK(),
		ApplicationID: appID,
	})
}
