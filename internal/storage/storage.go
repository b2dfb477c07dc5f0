package storage

import (
	"errors"
	"fmt"
	"time"

	"eventRegistry/internal/models"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrStatusNotPending    = errors.New("application is not pending")
	ErrUserNotFound        = errors.New("user not found")
)

// ServiceError is a failure reported by the external backend. Message is
// what the backend said and is safe to show to the caller.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

// ServiceMessage extracts the backend message from err, if any.
func ServiceMessage(err error) (string, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message, true
	}

	return "", false
}

type EventInput struct {
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	ManuallyClosed bool
}

type ApplicationInput struct {
	EventID          string
	ProjectName      string
	University       string
	Members          models.Members
	LeaderEmail      string
	LeaderPhone      string
	ProblemStatement string
	Solution         string
}

// GroupSize is always the number of listed members.
func (in ApplicationInput) GroupSize() int {
	return len(in.Members)
}

// ApplicationFilter narrows application listings. Zero value lists everything.
type ApplicationFilter struct {
	EventID string
}
