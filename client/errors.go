package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx registry response decoded from the standard error
// envelope.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("registry: %s (http %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("registry: http %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the registry.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 422 from the registry.
func IsValidation(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusUnprocessableEntity
}

func apiError(resp *resty.Response) error {
	var env struct {
		Error   string `json:"error"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &env); err != nil || env.Code == 0 {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(resp.String()),
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode(),
		Code:       env.Code,
		Message:    env.Message,
		Detail:     env.Error,
	}
}
