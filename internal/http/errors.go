package httpapi

import (
	"context"
	"errors"
	"net/http"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
	"shopadmin/internal/service"
)

// Kind classifies err for responses and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoSession), errors.Is(err, backend.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatusValue):
		return "invalid_input"
	case errors.Is(err, service.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, service.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, ErrNoView), errors.Is(err, service.ErrClosed):
		return "no_active_view"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, backend.ErrMalformedResponse):
		return "bad_gateway"
	case remoteStatus(err) != 0:
		return "remote"
	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNoSession), errors.Is(err, backend.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatusValue):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, ErrNoView), errors.Is(err, service.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrMalformedResponse):
		return http.StatusBadGateway
	}
	// the backend's client errors are passed through, anything else is a gateway failure
	switch code := remoteStatus(err); {
	case code == 0:
		return http.StatusInternalServerError
	case code == http.StatusBadRequest, code == http.StatusNotFound,
		code == http.StatusConflict, code == http.StatusForbidden:
		return code
	default:
		return http.StatusBadGateway
	}
}

// remoteStatus is the backend's HTTP status carried by err, -1 for a
// transport failure and 0 when err did not come from the backend.
func remoteStatus(err error) int {
	var re *backend.RemoteError
	if !errors.As(err, &re) {
		return 0
	}
	if re.StatusCode == 0 {
		return -1
	}
	return re.StatusCode
}

// message picks the text shown to the operator.
func message(err error) string {
	if m := backend.Message(err); m != "" {
		return m
	}
	return err.Error()
}
