package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

const maxJSONBodySize = 5 << 20

// errorResponse is the body of every failed request
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError maps err to a status and a user facing message. Upstream
// errors keep the upstream status; 5xx are reported to Sentry if enabled.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := describeError(err)
	logger := logging.From(r.Context())

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "status", status)
		if h.sentry {
			captureError(r, err)
		}
	} else {
		logger.Warn("Request rejected", "error", err, "status", status)
	}

	writeJSON(w, r, status, &errorResponse{Success: false, Error: msg})
}

func captureError(r *http.Request, err error) {
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// describeError returns the HTTP status and message for err
func describeError(err error) (int, string) {
	var upstream *model.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.StatusCode {
		case http.StatusUnauthorized:
			return upstream.StatusCode, "Authentication failed. Please check your email and API token."
		case http.StatusForbidden:
			return upstream.StatusCode, "Access denied. Your account does not have permission for this operation."
		case http.StatusNotFound:
			return upstream.StatusCode, fmt.Sprintf("%s resource not found. Please check the URL and keys.", upstream.Service)
		}

		status := upstream.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		return status, fmt.Sprintf("%s API error: %s", upstream.Service, upstream.Message)
	}

	if errors.Is(err, model.ErrInvalidInput) {
		return http.StatusBadRequest, inputErrorMessage(err)
	}

	return http.StatusInternalServerError, "Internal server error: " + err.Error()
}

// inputErrorMessage drops the sentinel suffix from the wrapped message
func inputErrorMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+model.ErrInvalidInput.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "failed to read request body", goerr.V("cause", err.Error()))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "invalid JSON body", goerr.V("cause", err.Error()))
	}
	return nil
}
