package login

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventRegistry/internal/auth"
	"eventRegistry/internal/http-server/handlers/auth/login/mocks"
	"eventRegistry/internal/lib/logger/handlers/slogdiscard"
	"eventRegistry/internal/lib/session"
	"eventRegistry/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const credentials = `{"email": "admin@example.com", "password": "secret"}`

var identity = auth.Identity{UserID: "user-1", Email: "admin@example.com", AccessToken: "access"}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(a *mocks.Authenticator, r *mocks.RoleGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid email",
			requestBody:    `{"email": "admin", "password": "secret"}`,
			mockSetup:      func(a *mocks.Authenticator, r *mocks.RoleGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Email is not a valid email"}`,
		},
		{
			name:           "Missing password",
			requestBody:    `{"email": "admin@example.com"}`,
			mockSetup:      func(a *mocks.Authenticator, r *mocks.RoleGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Password is a required field"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{`,
			mockSetup:      func(a *mocks.Authenticator, r *mocks.RoleGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Wrong credentials",
			requestBody: credentials,
			mockSetup: func(a *mocks.Authenticator, r *mocks.RoleGetter) {
				a.On("SignIn", mock.Anything, "admin@example.com", "secret").
					Return(auth.Identity{}, &storage.ServiceError{StatusCode: 400, Code: "invalid_grant", Message: "Invalid login credentials"})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"login failed: Invalid login credentials"}`,
		},
		{
			name:        "No user returned",
			requestBody: credentials,
			mockSetup: func(a *mocks.Authenticator, r *mocks.RoleGetter) {
				a.On("SignIn", mock.Anything, "admin@example.com", "secret").Return(auth.Identity{}, auth.ErrNoUser)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"login failed: no user returned"}`,
		},
		{
			name:        "Auth service down",
			requestBody: credentials,
			mockSetup: func(a *mocks.Authenticator, r *mocks.RoleGetter) {
				a.On("SignIn", mock.Anything, "admin@example.com", "secret").
					Return(auth.Identity{}, &storage.ServiceError{StatusCode: 503, Message: "upstream unavailable"})
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"login failed: upstream unavailable"}`,
		},
		{
			name:        "Transport error",
			requestBody: credentials,
			mockSetup: func(a *mocks.Authenticator, r *mocks.RoleGetter) {
				a.On("SignIn", mock.Anything, "admin@example.com", "secret").Return(auth.Identity{}, errors.New("dial tcp: refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"login failed"}`,
		},
		{
			name:        "Not an admin",
			requestBody: credentials,
			mockSetup: func(a *mocks.Authenticator, r *mocks.RoleGetter) {
				a.On("SignIn", mock.Anything, "admin@example.com", "secret").Return(identity, nil)
				r.On("GetUserRole", mock.Anything, "user-1", "access").Return("participant", nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"you are not authorized as an admin"}`,
		},
		{
			name:        "Role lookup fails",
			requestBody: credentials,
			mockSetup: func(a *mocks.Authenticator, r *mocks.RoleGetter) {
				a.On("SignIn", mock.Anything, "admin@example.com", "secret").Return(identity, nil)
				r.On("GetUserRole", mock.Anything, "user-1", "access").Return("", storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"you are not authorized as an admin"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockAuth := mocks.NewAuthenticator(t)
			mockRoles := mocks.NewRoleGetter(t)
			tc.mockSetup(mockAuth, mockRoles)

			handler := New(logger, mockAuth, mockRoles, session.NewManager("test-secret", time.Hour))

			req, err := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}

func TestLoginIssuesAdminSession(t *testing.T) {
	t.Parallel()

	mockAuth := mocks.NewAuthenticator(t)
	mockRoles := mocks.NewRoleGetter(t)
	mockAuth.On("SignIn", mock.Anything, "admin@example.com", "secret").Return(identity, nil)
	mockRoles.On("GetUserRole", mock.Anything, "user-1", "access").Return(session.RoleAdmin, nil)

	sessions := session.NewManager("test-secret", time.Hour)
	handler := New(slogdiscard.NewDiscardLogger(), mockAuth, mockRoles, sessions)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(credentials)))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	claims, err := sessions.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, session.RoleAdmin, claims.Role)
}

func TestLoginRequestHidesPassword(t *testing.T) {
	t.Parallel()

	req := LoginRequest{Email: "admin@example.com", Password: "secret"}

	assert.NotContains(t, req.LogValue().String(), "secret")
	assert.Contains(t, req.LogValue().String(), "admin@example.com")
}
