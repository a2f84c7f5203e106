// client/errors.go
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

// ErrRateLimited is returned when the server answers 429.
var ErrRateLimited = errors.New("rate limited")

// storageMessage is the safe message the server sends for storage failures.
const storageMessage = "A storage error occurred."

// APIError is a non-2xx answer. It unwraps to the domain error kind of its status, so
// errors.Is(err, domain.ErrForbidden) and domain.KindOf(err) work on client errors.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("collecta: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return domain.ErrInvalidInput
	case e.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case e.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return domain.ErrConflict
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode >= http.StatusInternalServerError && e.Message == storageMessage:
		return domain.ErrStorage
	default:
		return nil
	}
}

func newAPIError(status int, body []byte) *APIError {
	var env struct {
		Error string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &env) == nil {
		msg = env.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
