package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const unknownErrorMessage = "Unknown error occurred"

// Error is the single error type returned by the gateway. Transport failures
// carry Status 500 and a nil Body; server errors carry the response status and
// the parsed JSON body when there was one.
type Error struct {
	Status  int
	Message string
	Body    any
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func newServerError(resp *http.Response, body any) *Error {
	text := http.StatusText(resp.StatusCode)
	if text == "" {
		text = resp.Status
	}
	return &Error{
		Status:  resp.StatusCode,
		Message: "API request failed: " + text,
		Body:    body,
	}
}

func newTransportError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: transportMessage(err), cause: err}
}

// transportMessage strips the method and URL net/http prepends.
func transportMessage(err error) string {
	if err == nil {
		return unknownErrorMessage
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownErrorMessage
}

// StatusCode returns the status carried by err, or 0 if err is not an *Error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
