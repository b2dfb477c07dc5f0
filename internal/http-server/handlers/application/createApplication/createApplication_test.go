package createApplication

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventRegistry/internal/http-server/handlers/application/createApplication/mocks"
	"eventRegistry/internal/lib/logger/handlers/slogdiscard"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const eventID = "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88"

const validBody = `{
	"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88",
	"project_name": " Rover ",
	"university": "MIT",
	"full_names": ["Ann", " Bob "],
	"group_leader_email": "ann@example.com",
	"group_leader_phone": "+100",
	"problem_statement": "Mars is far",
	"solution": "Drive"
}`

func TestCreateApplicationHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	now := func() time.Time { return time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC) }

	openEvent := &models.Event{
		ID:        eventID,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	closedEvent := &models.Event{
		ID:             eventID,
		StartDate:      openEvent.StartDate,
		EndDate:        openEvent.EndDate,
		ManuallyClosed: true,
	}
	upcomingEvent := &models.Event{
		ID:        eventID,
		StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}

	expectedInput := storage.ApplicationInput{
		EventID:          eventID,
		ProjectName:      "Rover",
		University:       "MIT",
		Members:          models.Members{"Ann", "Bob"},
		LeaderEmail:      "ann@example.com",
		LeaderPhone:      "+100",
		ProblemStatement: "Mars is far",
		Solution:         "Drive",
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.ApplicationCreator)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			requestBody: validBody,
			mockSetup: func(m *mocks.ApplicationCreator) {
				m.On("GetEvent", mock.Anything, eventID).Return(openEvent, nil)
				m.On("CreateApplication", mock.Anything, expectedInput).Return("app-1", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","application_id":"app-1"}`,
		},
		{
			name: "Matching group size accepted",
			requestBody: `{
				"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88", "project_name": "Rover", "university": "MIT",
				"group_size": 2, "full_names": ["Ann", "Bob"],
				"group_leader_email": "ann@example.com", "group_leader_phone": "+100",
				"problem_statement": "Mars is far", "solution": "Drive"
			}`,
			mockSetup: func(m *mocks.ApplicationCreator) {
				m.On("GetEvent", mock.Anything, eventID).Return(openEvent, nil)
				m.On("CreateApplication", mock.Anything, expectedInput).Return("app-2", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","application_id":"app-2"}`,
		},
		{
			name: "Empty project name",
			requestBody: `{
				"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88", "project_name": "", "university": "MIT",
				"full_names": ["Ann"], "group_leader_email": "ann@example.com", "group_leader_phone": "+100"
			}`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field ProjectName is a required field"}`,
		},
		{
			name: "Missing event",
			requestBody: `{
				"project_name": "Rover", "university": "MIT",
				"full_names": ["Ann"], "group_leader_email": "ann@example.com", "group_leader_phone": "+100"
			}`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field EventID is a required field"}`,
		},
		{
			name: "Malformed event id",
			requestBody: `{
				"event_id": "abc", "project_name": "Rover", "university": "MIT",
				"full_names": ["Ann"], "group_leader_email": "ann@example.com", "group_leader_phone": "+100"
			}`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field EventID is not a valid id"}`,
		},
		{
			name: "Blank member name",
			requestBody: `{
				"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88", "project_name": "Rover", "university": "MIT",
				"full_names": ["Ann", "  "], "group_leader_email": "ann@example.com", "group_leader_phone": "+100"
			}`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Members[1]")
			},
		},
		{
			name: "No members",
			requestBody: `{
				"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88", "project_name": "Rover", "university": "MIT",
				"full_names": [], "group_leader_email": "ann@example.com", "group_leader_phone": "+100"
			}`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Members")
			},
		},
		{
			name: "Invalid email",
			requestBody: `{
				"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88", "project_name": "Rover", "university": "MIT",
				"full_names": ["Ann"], "group_leader_email": "ann", "group_leader_phone": "+100"
			}`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field LeaderEmail is not a valid email"}`,
		},
		{
			name: "Group size mismatch",
			requestBody: `{
				"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88", "project_name": "Rover", "university": "MIT", "group_size": 3,
				"full_names": ["Ann", "Bob"], "group_leader_email": "ann@example.com", "group_leader_phone": "+100"
			}`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"group_size must equal the number of members"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `nope`,
			mockSetup:      func(m *mocks.ApplicationCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Event not found",
			requestBody: validBody,
			mockSetup: func(m *mocks.ApplicationCreator) {
				m.On("GetEvent", mock.Anything, eventID).Return(nil, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:        "Event manually closed",
			requestBody: validBody,
			mockSetup: func(m *mocks.ApplicationCreator) {
				m.On("GetEvent", mock.Anything, eventID).Return(closedEvent, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"event is not open for registration"}`,
		},
		{
			name:        "Event upcoming",
			requestBody: validBody,
			mockSetup: func(m *mocks.ApplicationCreator) {
				m.On("GetEvent", mock.Anything, eventID).Return(upcomingEvent, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"event is not open for registration"}`,
		},
		{
			name:        "Backend rejects insert",
			requestBody: validBody,
			mockSetup: func(m *mocks.ApplicationCreator) {
				m.On("GetEvent", mock.Anything, eventID).Return(openEvent, nil)
				m.On("CreateApplication", mock.Anything, expectedInput).
					Return("", &storage.ServiceError{StatusCode: 400, Code: "23502", Message: "null value in column \"university\""})
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"failed to submit registration: null value in column \"university\""}`,
		},
		{
			name:        "Insert fails",
			requestBody: validBody,
			mockSetup: func(m *mocks.ApplicationCreator) {
				m.On("GetEvent", mock.Anything, eventID).Return(openEvent, nil)
				m.On("CreateApplication", mock.Anything, expectedInput).Return("", errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to submit registration"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockCreator := mocks.NewApplicationCreator(t)
			tc.mockSetup(mockCreator)

			handler := New(logger, mockCreator, now)

			req, err := http.NewRequest(http.MethodPost, "/applications", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestMissingFieldDoesNotCallBackend(t *testing.T) {
	t.Parallel()

	mockCreator := mocks.NewApplicationCreator(t)
	handler := New(slogdiscard.NewDiscardLogger(), mockCreator, time.Now)

	body := `{"event_id": "3f1c2a9e-8b7d-4c51-9e0a-6d2b4f7a1c88", "project_name": "Rover", "university": "", "full_names": ["Ann"],
		"group_leader_email": "ann@example.com", "group_leader_phone": ""}`

	req, err := http.NewRequest(http.MethodPost, "/applications", bytes.NewBufferString(body))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "field University is a required field")
	assert.Contains(t, rr.Body.String(), "field LeaderPhone is a required field")

	mockCreator.AssertNotCalled(t, "GetEvent", mock.Anything, mock.Anything)
	mockCreator.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything)
}
