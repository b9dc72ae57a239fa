package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	// Local input failures. These never move a session out of its
	// current state.
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeDeviceUnavailable Code = "DEVICE_UNAVAILABLE"
	CodeNotRecording      Code = "NOT_RECORDING"

	// Submission failures, normalized at the client boundary.
	CodeNetworkError      Code = "NETWORK_ERROR"
	CodeServiceError      Code = "SERVICE_ERROR"
	CodeEmptyResult       Code = "EMPTY_RESULT"
	CodeMalformedResponse Code = "MALFORMED_RESPONSE"

	// Gateway-side codes.
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"
	CodeInternal Code = "INTERNAL"
)

// AppError is the unified error contract across layers.
type AppError struct {
	Code    Code
	Op      string // operation name, ex: "Session.Submit"
	Message string // safe message
	Err     error  // wrapped error
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Op != "" && e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "error"
	}
}

func (e *AppError) Unwrap() error { return e.Err }

func E(code Code, op, msg string, err error) error {
	return &AppError{Code: code, Op: op, Message: msg, Err: err}
}

func IsCode(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// Cause returns the human-readable message of an AppError, falling back
// to Error() for anything else. The session surfaces this verbatim.
func Cause(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func HTTPStatus(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		switch ae.Code {
		case CodeInvalidInput, CodeNotRecording, CodeMalformedResponse:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		case CodeDeviceUnavailable, CodeNetworkError:
			return http.StatusServiceUnavailable
		case CodeServiceError, CodeEmptyResult:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Backward-compatible sentinel errors
var (
	ErrNotFound = errors.New("not found")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || IsCode(err, CodeNotFound)
}
