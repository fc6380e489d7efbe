package web

// errors.go turns handler errors into user-facing responses.
//
// The technical error is logged with the request id; the client only sees a
// UserMessage chosen from the error's type, plus an HTTP status.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/fixes"
	"github.com/JonMunkholm/fieldmap/internal/logging"
	"github.com/JonMunkholm/fieldmap/internal/mapping"
	"github.com/JonMunkholm/fieldmap/internal/run"
	"github.com/JonMunkholm/fieldmap/internal/wizard"
)

// UserMessage is what an operator is told about a failure.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// requestError marks malformed input: bad JSON, bad ids, oversized bodies.
type requestError struct {
	msg string
	err error
}

func (e *requestError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *requestError) Unwrap() error { return e.err }

func badRequest(msg string, err error) error {
	return &requestError{msg: msg, err: err}
}

var genericMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again; contact support if it persists",
	Code:    "ERR000",
}

// MapError classifies err and returns the message and status to send.
func MapError(err error) (UserMessage, int) {
	if err == nil {
		return UserMessage{}, http.StatusOK
	}

	var (
		fieldErr *catalog.UnknownFieldError
		ruleErr  *fixes.UnknownRuleError
		reqErr   *requestError
	)

	switch {
	case errors.As(err, &fieldErr):
		return UserMessage{
			Message: "Target field " + fieldErr.Field + " is not available",
			Action:  "Choose a field from the target field list",
			Code:    "FLD001",
		}, http.StatusBadRequest

	case errors.As(err, &ruleErr):
		return UserMessage{
			Message: "Data fix " + ruleErr.RuleID + " does not apply to this field",
			Action:  "Pick one of the fixes listed for the mapping",
			Code:    "FIX001",
		}, http.StatusBadRequest

	case errors.Is(err, mapping.ErrIndexOutOfRange):
		return UserMessage{
			Message: "That mapping does not exist",
			Action:  "Reload the mapping list and try again",
			Code:    "MAP001",
		}, http.StatusNotFound

	case errors.Is(err, mapping.ErrInvalidMapping):
		return UserMessage{
			Message: "The mapping's data fixes are inconsistent",
			Action:  "Reset the mapping's target field to restore its default fixes",
			Code:    "MAP001",
		}, http.StatusUnprocessableEntity

	case errors.Is(err, wizard.ErrSessionNotFound):
		return UserMessage{
			Message: "Your configuration session has expired",
			Action:  "Start a new session",
			Code:    "SES001",
		}, http.StatusNotFound

	case errors.Is(err, wizard.ErrInvalidStep):
		return UserMessage{
			Message: "That step cannot be opened yet",
			Action:  "Complete the current step first",
			Code:    "WIZ001",
		}, http.StatusConflict

	case errors.Is(err, run.ErrScheduleIncomplete):
		return UserMessage{
			Message: "Please select both date and time for custom schedule",
			Action:  "Pick a date and a time, or run after hours",
			Code:    "RUN001",
		}, http.StatusUnprocessableEntity

	case errors.Is(err, run.ErrInvalidSchedule):
		return UserMessage{
			Message: "The schedule is not valid",
			Action:  "Choose a time in the future",
			Code:    "RUN002",
		}, http.StatusUnprocessableEntity

	case errors.Is(err, errTooManyPreviews):
		return UserMessage{
			Message: "The preview service is busy",
			Action:  "Please try again in a few seconds",
			Code:    "REQ001",
		}, http.StatusServiceUnavailable

	case errors.As(err, &reqErr):
		return UserMessage{
			Message: "The request could not be read: " + reqErr.msg,
			Action:  "Check the request body and parameters",
			Code:    "REQ001",
		}, http.StatusBadRequest
	}

	return genericMessage, http.StatusInternalServerError
}

// respondError logs err and writes the mapped response, as JSON for API
// clients and plain text otherwise.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg, status := MapError(err)

	log := logging.FromContext(r.Context()).With(
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err.Error(),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Warn("request rejected")
	}

	if wantsJSON(r) {
		writeJSONStatus(w, status, ErrorResponse{
			Error:   msg.Message,
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		})
		return
	}
	http.Error(w, msg.Message+" ("+msg.Code+")", status)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json") ||
		strings.HasPrefix(r.URL.Path, "/api/")
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
