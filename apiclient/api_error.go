package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-console/internal/errors"
)

const maxErrorBody = 4 << 10

// APIError is a non-2xx answer from the admin API other than 401.
type APIError struct {
	StatusCode int
	Message    string
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			msg = body.Message
		case body.Error != "":
			msg = body.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status onto the console's sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.ErrValidation
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	}
	return errors.ErrUnexpectedStatus
}
