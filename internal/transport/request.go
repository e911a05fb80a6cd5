package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/logging"
)

// DecodeResponse reads the response body, maps non-success statuses to
// typed errors, and unmarshals JSON into target. A nil target discards the
// body after the status check. The operation name gives errors context
// ("fetch users", "create user").
func DecodeResponse(resp *http.Response, operation string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("operation", operation).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &errors.AuthenticationError{
			Endpoint: operation,
			Method:   "bearer",
			Message:  errorMessage(body, resp.Status),
		}
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return &errors.APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.Status),
		}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", operation, err)
	}

	return nil
}

// errorMessage extracts a usable message from an error response. The
// directory returns {"error": "..."} bodies, but proxies in front of it
// return whatever they like.
func errorMessage(body []byte, status string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return status
}
