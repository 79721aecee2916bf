package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse тело ответа не совпадает с ожидаемой схемой
	ErrMalformedResponse = errors.New("malformed response shape")
	// ErrUnauthorized бэкенд ответил 401, токены сессии сброшены
	ErrUnauthorized = errors.New("unauthorized")
)

// RemoteError describes a failed call to the backend. Message holds the
// reason reported by the backend, if any.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": remote error"
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Message returns the backend-reported reason carried by err, or "".
func Message(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
