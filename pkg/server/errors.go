package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
)

// ErrorResponse is the structured body every non-2xx response carries
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes a structured error response carrying the request id
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes an error response derived from err. Structured
// errors keep their code, message, and context; anything else maps to an
// internal error with the fallback message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	code := apperrors.ErrCodeInternal
	message := fallbackMessage
	var merged map[string]any

	var serr *apperrors.StructuredError
	if stderrors.As(err, &serr) {
		code = serr.Code
		message = serr.Message
		merged = mergeDetails(serr.Context, details)
		if serr.Cause != nil {
			merged = mergeDetails(merged, map[string]any{"error": serr.Cause.Error()})
		}
	} else {
		merged = mergeDetails(details, map[string]any{"error": err.Error()})
	}

	WriteError(w, r, StatusForCode(code), code, message, retryableFromCode(code), merged)
}

// StatusForCode maps structured error codes onto HTTP status codes
func StatusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidArgument, apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may retry the request for
// the given code
func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeTimeout,
		apperrors.ErrCodeUnavailable,
		apperrors.ErrCodeRateLimitExceeded,
		apperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails merges two detail maps, b overwriting a. Returns nil when
// both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}
