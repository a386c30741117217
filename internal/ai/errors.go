package ai

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// APIError is an error payload or non-200 status returned by a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s API error (status %d)", e.Provider, e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	} else if e.Type != "" {
		fmt.Fprintf(&b, " [%s]", e.Type)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// credentialCodes are the provider error codes and types that a user can fix
// by supplying a different API key.
var credentialCodes = map[string]bool{
	"invalid_api_key":            true,
	"insufficient_quota":         true,
	"rate_limit_exceeded":        true,
	"billing_hard_limit_reached": true,
	"billing_not_active":         true,
	"authentication_error":       true,
	"permission_error":           true,
	"rate_limit_error":           true,
}

// credentialSignatures are matched case-insensitively against the error text
// when no structured code is available. Bare status numbers are left out:
// transport errors embed URLs and ports that may contain them.
var credentialSignatures = []string{
	"api key",
	"api_key",
	"unauthorized",
	"quota",
	"rate limit",
	"rate_limit",
	"billing",
}

// IsCredentialError reports whether err is an authorization, quota,
// rate-limit or billing failure. Structured provider errors are checked
// first. Transport failures are never credential errors. Anything else is
// matched against known substrings, which is a heuristic and may
// misclassify unusual messages.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusPaymentRequired,
			http.StatusForbidden, http.StatusTooManyRequests:
			return true
		}
		if credentialCodes[apiErr.Code] || credentialCodes[apiErr.Type] {
			return true
		}
	}

	if isTransportError(err) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range credentialSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// isTransportError reports whether err came from the HTTP transport rather
// than from a provider reply.
func isTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
