package getEventInfo

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventRegistry/internal/http-server/handlers/event/getEventInfo/mocks"
	"eventRegistry/internal/lib/logger/handlers/slogdiscard"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"
	"eventRegistry/internal/storage/supabase"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	now := func() time.Time { return time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC) }

	event := &models.Event{
		ID:        "ev-1",
		Name:      "Hackathon",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", mock.Anything, "ev-1").Return(event, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","event":{
				"id":"ev-1",
				"name":"Hackathon",
				"application_start_date":"2024-01-01T00:00:00Z",
				"application_end_date":"2024-01-10T00:00:00Z",
				"is_manually_closed":false,
				"status":"open"
			}}`,
		},
		{
			name: "Not found",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", mock.Anything, "ev-1").Return(nil, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name: "Internal error",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", mock.Anything, "ev-1").Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get event information"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventGetter(t)
			tc.mockSetup(mockGetter)

			router := chi.NewRouter()
			router.Get("/events/{id}", New(logger, mockGetter, now))

			req, err := http.NewRequest(http.MethodGet, "/events/ev-1", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestMalformedIDThroughRESTBackend(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"22P02","message":"invalid input syntax for type uuid: \"abc\""}`))
	}))
	defer backend.Close()

	router := chi.NewRouter()
	router.Get("/events/{id}", New(slogdiscard.NewDiscardLogger(), supabase.New(backend.URL, "key", backend.Client()), time.Now))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/abc", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"status":"Error","error":"event not found"}`, rr.Body.String())
}
