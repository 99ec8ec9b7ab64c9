package fivetran

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// endpointContexts adds operation context to descriptions based on the first
// matching endpoint fragment. Order matters: more specific fragments first.
var endpointContexts = []FieldHint{
	{"/test", " - Runs diagnostic tests and validations"},
	{"/sync", " - Triggers data synchronization"},
	{"/resync", " - Re-syncs historical data (expensive operation)"},
	{"/state", " - Manages sync states and configuration"},
	{"/schemas", " - Manages table and column configurations"},
	{"/certificates", " - Manages SSL certificates for secure connections"},
	{"/fingerprints", " - Manages SSH key fingerprints"},
	{"/webhooks", " - Manages event notifications and alerts"},
	{"/transformations", " - Manages dbt transformations and data models"},
	{"/users", " - Manages user accounts and permissions"},
	{"/teams", " - Manages team memberships and roles"},
	{"/groups", " - Manages resource organization and access control"},
}

// paramHints are appended to descriptions for well-known path parameters.
var paramHints = []FieldHint{
	{"connection_id", "connection_id (format: conn_xxxxxxxx)"},
	{"destination_id", "destination_id (format: dest_xxxxxxxx)"},
	{"group_id", "group_id (format: group_xxxxxxxx)"},
	{"user_id", "user_id"},
}

// smartDescription enriches a tool's base description with operation-type
// context, endpoint-specific notes, parameter hints, and body examples.
func smartDescription(def ToolDefinition) string {
	var b strings.Builder
	b.WriteString(def.Description)

	switch def.Method {
	case MethodGet:
		b.WriteString(" (Read-only operation)")
	case MethodPost:
		b.WriteString(" ⚠️ WRITE OPERATION - Confirm with user before calling. Creates new resources")
	case MethodPatch:
		b.WriteString(" ⚠️ WRITE OPERATION - Confirm with user before calling. Modifies existing resources")
	case MethodDelete:
		b.WriteString(" ⚠️ WRITE OPERATION - Confirm with user before calling. Permanently removes resources")
	}

	for _, ec := range endpointContexts {
		if strings.Contains(def.Endpoint, ec.Key) {
			b.WriteString(ec.Desc)
			break
		}
	}

	var hints []string
	for _, ph := range paramHints {
		if strings.Contains(def.Endpoint, "{"+ph.Key+"}") {
			hints = append(hints, ph.Desc)
		}
	}
	if len(hints) > 0 {
		b.WriteString("\nRequired: ")
		b.WriteString(strings.Join(hints, ", "))
	}

	if len(def.ConfigExample) > 0 {
		b.WriteString("\n\nConfiguration example:")
		for _, f := range def.ConfigExample {
			b.WriteString("\n- " + f.Key + ": " + f.Desc)
		}
	}
	if len(def.CommonUpdates) > 0 {
		b.WriteString("\n\nCommon updates:")
		for _, f := range def.CommonUpdates {
			b.WriteString("\n- " + f.Key + ": " + f.Desc)
		}
	}

	return b.String()
}

// SchemaParams returns the caller-facing parameter names for a tool: the
// endpoint template's placeholders plus any declared extras (request_body),
// deduplicated and restricted to the shared parameter table.
func SchemaParams(def ToolDefinition) []string {
	seen := make(map[string]bool)
	var params []string

	add := func(name string) {
		if seen[name] {
			return
		}
		if _, ok := LookupParam(name); !ok {
			return
		}
		seen[name] = true
		params = append(params, name)
	}

	for _, name := range EndpointParams(def.Endpoint) {
		add(name)
	}
	for _, name := range def.Params {
		add(name)
	}
	return params
}

// BuildTool converts a ToolDefinition into an mcp.Tool with the schema the
// calling agent sees. Every parameter is required.
func BuildTool(def ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(smartDescription(def))}
	for _, name := range SchemaParams(def) {
		pd, _ := LookupParam(name)
		opts = append(opts, buildParamOption(name, pd))
	}
	return mcp.NewTool(def.Name, opts...)
}

// buildParamOption maps a ParamDefinition to the appropriate mcp-go tool option.
func buildParamOption(name string, pd ParamDefinition) mcp.ToolOption {
	opts := []mcp.PropertyOption{mcp.Required()}
	if pd.Description != "" {
		opts = append(opts, mcp.Description(pd.Description))
	}

	switch pd.Type {
	case "integer":
		return mcp.WithNumber(name, opts...)
	default:
		return mcp.WithString(name, opts...)
	}
}

// RegisterTools registers every registry tool on the MCP server, wiring each
// to the dispatcher. Returns the number of tools registered.
func RegisterTools(s *server.MCPServer, d *Dispatcher) int {
	defs := Tools()
	for _, def := range defs {
		s.AddTool(BuildTool(def), toolHandler(d, def.Name))
	}
	return len(defs)
}

// toolHandler routes an MCP tool call through the dispatcher, normalizing
// every failure to a readable text result.
func toolHandler(d *Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := d.Dispatch(ctx, name, request.GetArguments())
		if err != nil {
			return errorResult(userMessage(err)), nil
		}
		return textResult(formatJSON(result)), nil
	}
}

// userMessage converts a dispatch error into the text shown to the caller.
func userMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return "Error: " + err.Error()
}

// formatJSON pretty-prints a JSON body, returning it unchanged on failure.
func formatJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
