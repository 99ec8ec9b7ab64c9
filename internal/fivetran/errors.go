package fivetran

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when the API key or secret is absent.
// Raised before any network call is attempted.
var ErrMissingCredentials = errors.New("FIVETRAN_API_KEY and FIVETRAN_API_SECRET must be set")

// UnknownToolError indicates an invocation named a tool not present in the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// MissingParameterError indicates an endpoint placeholder had no matching argument.
type MissingParameterError struct {
	Param    string
	Endpoint string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q for endpoint %s", e.Param, e.Endpoint)
}

// PermissionDeniedError indicates a mutating call was attempted while writes are disabled.
type PermissionDeniedError struct {
	Method Method
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("write operations (%s) are disabled. Set FIVETRAN_ALLOW_WRITES=true to enable POST, PATCH, and DELETE requests", e.Method)
}

// InvalidRequestBodyError indicates the request_body argument was not parseable as JSON.
type InvalidRequestBodyError struct {
	Err error
}

func (e *InvalidRequestBodyError) Error() string {
	return fmt.Sprintf("invalid JSON in request_body: %v", e.Err)
}

func (e *InvalidRequestBodyError) Unwrap() error { return e.Err }

// StatusError indicates the upstream API returned a non-2xx status.
// Message holds the upstream error message when the body was parseable JSON,
// otherwise the raw response text.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Fivetran API error: %d - %s", e.StatusCode, e.Message)
}
