package analysis

import (
	"errors"
	"strings"
)

// Kind classifies a failure so the HTTP boundary can pick a status code.
type Kind int

const (
	// KindUpstream is a provider or transport fault, including a reply that
	// is not JSON. It is the zero value so unclassified errors land here.
	KindUpstream Kind = iota
	// KindValidation is a shape violation, in the caller's input or the
	// model's output.
	KindValidation
	// KindCredential is an upstream failure the user can fix by supplying a
	// different API key: bad key, exhausted quota, rate limit or billing.
	KindCredential
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCredential:
		return "credential"
	default:
		return "upstream"
	}
}

// Reasons refine KindUpstream failures for logging.
const (
	ReasonProvider      = "provider"
	ReasonEmptyResponse = "empty_response"
	ReasonMalformedJSON = "malformed_json"
)

// Issue is one violated constraint. Code and Params are stable so a client
// can render its own localized message; Message is the English rendering.
type Issue struct {
	Path    []string       `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// Error is a classified analysis failure.
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Details []Issue
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Reason != "" {
		b.WriteString(" (")
		b.WriteString(e.Reason)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindUpstream if err is not classified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstream
}
