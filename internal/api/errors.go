package api

import (
	"encoding/json"
	"fmt"
)

// Error is a non-2xx response from the backend. Detail carries the server's
// structured message when the body had one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP error %d", e.Status)
}

// decodeError extracts {"detail": ...} from an error body. A non-string
// detail (e.g. a validation error list) is stringified as JSON.
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 || string(payload.Detail) == "null" {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
	} else {
		apiErr.Detail = string(payload.Detail)
	}
	return apiErr
}
