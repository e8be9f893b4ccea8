package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks errors caused by a malformed request
var ErrInvalidInput = errors.New("invalid input")

// UpstreamError is returned when Jira, Confluence or another upstream API
// answers with a non-2xx status
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error (HTTP %d): %s", e.Service, e.StatusCode, e.Message)
}

// StatusOf extracts the upstream status code from err, or 0 when err does
// not carry one
func StatusOf(err error) int {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	return 0
}
