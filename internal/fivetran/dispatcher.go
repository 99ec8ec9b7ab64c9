package fivetran

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/fivetran/fivetran-mcp/internal/common"
)

// PreCheck is an optional policy hook run after registry lookup and before
// the permission gate. Returning an error aborts the invocation with no
// network calls.
type PreCheck func(ctx context.Context, tool ToolDefinition, args map[string]any) error

// Dispatcher resolves tool invocations against the registry and executes
// them through the client. Stateless per invocation; safe for concurrent use.
type Dispatcher struct {
	client   *Client
	logger   *common.Logger
	preCheck PreCheck
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPreCheck installs a policy hook consulted before the permission gate.
func WithPreCheck(pc PreCheck) Option {
	return func(d *Dispatcher) { d.preCheck = pc }
}

// NewDispatcher creates a dispatcher backed by the given client.
func NewDispatcher(client *Client, logger *common.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{client: client, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one tool invocation and returns the JSON result body.
// Arguments are split into path parameters (keys matching the endpoint's
// placeholders) and the optional request_body parameter. Exactly one result
// or one error is produced; validation failures never reach the network.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) ([]byte, error) {
	tool, err := LookupTool(name)
	if err != nil {
		return nil, err
	}

	logger := d.logger.WithCorrelationId(uuid.New().String())
	logger.Debug().
		Str("tool", name).
		Str("method", string(tool.Method)).
		Str("endpoint", tool.Endpoint).
		Msg("dispatching tool invocation")

	if d.preCheck != nil {
		if err := d.preCheck(ctx, tool, args); err != nil {
			return nil, err
		}
	}

	if err := d.client.CheckWritePermission(tool.Method); err != nil {
		return nil, err
	}

	pathParams := make(map[string]string, len(args))
	for k, v := range args {
		if k == bodyParam || v == nil {
			continue
		}
		pathParams[k] = fmt.Sprint(v)
	}

	endpoint, err := ExpandEndpoint(tool.Endpoint, pathParams)
	if err != nil {
		return nil, err
	}

	var body []byte
	if raw, ok := args[bodyParam]; ok && raw != nil {
		text, ok := raw.(string)
		if !ok {
			return nil, &InvalidRequestBodyError{Err: fmt.Errorf("request_body must be a JSON string, got %T", raw)}
		}
		var parsed json.RawMessage
		if err := json.Unmarshal([]byte(text), &parsed); err != nil {
			return nil, &InvalidRequestBodyError{Err: err}
		}
		body = parsed
	}

	var result []byte
	if tool.AutoPaginate {
		result, err = d.client.CallAllPages(ctx, endpoint)
	} else {
		result, err = d.client.Call(ctx, tool.Method, endpoint, body)
	}
	if err != nil {
		logger.Warn().Str("tool", name).Str("error", err.Error()).Msg("tool invocation failed")
		return nil, err
	}

	return result, nil
}
