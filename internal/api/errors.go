package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound marks a 404. GetByID callers turn it into a nil record;
// every other path surfaces the normalized server message like any
// failure.
var ErrNotFound = errors.New("record not found")

// Error is an API failure normalized to one human-readable message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

// Is matches ErrNotFound for 404 responses, so callers can branch with
// errors.Is while the server-supplied message stays intact.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// errorBody is the error envelope the backend returns. Some endpoints use
// "message", some "error"; "message" wins when both are set.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

const fallbackMessage = "request failed"

// normalizeError converts a non-2xx response into an *Error, picking the
// first available message: server "message" field, server "error" field,
// then a hardcoded fallback. 404s keep their body message too; only the
// empty-body fallback differs.
func normalizeError(status int, body []byte) error {
	msg := ""
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			msg = eb.Message
		} else {
			msg = eb.Error
		}
	}
	if msg == "" {
		if status == http.StatusNotFound {
			msg = fmt.Sprintf("%s (status 404)", ErrNotFound.Error())
		} else {
			msg = fmt.Sprintf("%s (status %d)", fallbackMessage, status)
		}
	}
	return &Error{StatusCode: status, Message: msg}
}
