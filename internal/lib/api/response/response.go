package response

import (
	"fmt"
	"net/http"
	"strings"

	"eventRegistry/internal/storage"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		case "uuid":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid id", err.Field()))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "gtefield":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must not be before %s", err.Field(), err.Param()))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must contain at least %s item(s)", err.Field(), err.Param()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMsgs, ", "),
	}
}

// FromBackend builds the reply for a failed backend call. When the backend
// reported its own message it is passed through with 502, otherwise the
// generic msg goes out with 500.
func FromBackend(msg string, err error) (int, Response) {
	if svcMsg, ok := storage.ServiceMessage(err); ok {
		return http.StatusBadGateway, Error(msg + ": " + svcMsg)
	}

	return http.StatusInternalServerError, Error(msg)
}
