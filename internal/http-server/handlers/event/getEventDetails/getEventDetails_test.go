package getEventDetails

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventRegistry/internal/http-server/handlers/event/getEventDetails/mocks"
	"eventRegistry/internal/lib/logger/handlers/slogdiscard"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEventDetailsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	now := func() time.Time { return time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC) }

	event := &models.Event{
		ID:             "ev-1",
		Name:           "Hackathon",
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		ManuallyClosed: true,
	}
	filter := storage.ApplicationFilter{EventID: "ev-1"}

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewEventDetailsGetter(t)
		m.On("GetEvent", mock.Anything, "ev-1").Return(event, nil)
		m.On("GetApplications", mock.Anything, filter).Return([]models.Application{
			{ID: "a-1", EventID: "ev-1", GroupSize: 2, Members: models.Members{"Ann", "Bob"}},
			{ID: "a-2", EventID: "ev-1", GroupSize: 6},
		}, nil)

		rr := serve(t, New(logger, m, now))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp EventDetailsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, models.EventClosed, resp.Event.Status)
		assert.Len(t, resp.Applications, 2)
		assert.Equal(t, models.Members{"Ann", "Bob"}, resp.Applications[0].Members)
		assert.Equal(t, 4.0, resp.AvgGroupSize)
	})

	t.Run("No applications", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewEventDetailsGetter(t)
		m.On("GetEvent", mock.Anything, "ev-1").Return(event, nil)
		m.On("GetApplications", mock.Anything, filter).Return([]models.Application{}, nil)

		rr := serve(t, New(logger, m, now))

		var resp EventDetailsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 0.0, resp.AvgGroupSize)
	})

	t.Run("Event not found", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewEventDetailsGetter(t)
		m.On("GetEvent", mock.Anything, "ev-1").Return(nil, storage.ErrEventNotFound)

		rr := serve(t, New(logger, m, now))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"event not found"}`, rr.Body.String())
	})

	t.Run("Applications fail", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewEventDetailsGetter(t)
		m.On("GetEvent", mock.Anything, "ev-1").Return(event, nil)
		m.On("GetApplications", mock.Anything, filter).Return(nil, errors.New("boom"))

		rr := serve(t, New(logger, m, now))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"failed to get applications"}`, rr.Body.String())
	})
}

func serve(t *testing.T, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/admin/events/{id}", h)

	req, err := http.NewRequest(http.MethodGet, "/admin/events/ev-1", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}
