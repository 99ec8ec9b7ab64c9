package fivetran

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// For every registry entry, the caller-facing parameter declaration must
// contain exactly the placeholders found in the endpoint template plus any
// declared body parameter.
func TestSchemaParams_MatchTemplateAndBody(t *testing.T) {
	for _, def := range Tools() {
		want := map[string]bool{}
		for _, p := range EndpointParams(def.Endpoint) {
			want[p] = true
		}
		for _, p := range def.Params {
			want[p] = true
		}

		got := SchemaParams(def)
		if len(got) != len(want) {
			t.Errorf("tool %s: expected %d params, got %d (%v)", def.Name, len(want), len(got), got)
			continue
		}
		for _, p := range got {
			if !want[p] {
				t.Errorf("tool %s: unexpected schema param %q", def.Name, p)
			}
		}
	}
}

func TestBuildTool_NoParams(t *testing.T) {
	def, _ := LookupTool("get_account_info")
	tool := BuildTool(def)

	if tool.Name != "get_account_info" {
		t.Errorf("expected name 'get_account_info', got %q", tool.Name)
	}
	if len(tool.InputSchema.Properties) != 0 {
		t.Errorf("expected no properties, got %v", tool.InputSchema.Properties)
	}
	if !strings.Contains(tool.Description, "(Read-only operation)") {
		t.Errorf("expected read-only note in description: %q", tool.Description)
	}
}

func TestBuildTool_PathAndBodyParams(t *testing.T) {
	def, _ := LookupTool("modify_connection")
	tool := BuildTool(def)

	schema := tool.InputSchema
	if _, exists := schema.Properties["connection_id"]; !exists {
		t.Error("expected 'connection_id' in tool schema properties")
	}
	if _, exists := schema.Properties["request_body"]; !exists {
		t.Error("expected 'request_body' in tool schema properties")
	}
	if len(schema.Properties) != 2 {
		t.Errorf("expected exactly 2 properties, got %v", schema.Properties)
	}

	required := map[string]bool{}
	for _, r := range schema.Required {
		required[r] = true
	}
	if !required["connection_id"] || !required["request_body"] {
		t.Errorf("expected both params required, got %v", schema.Required)
	}
}

func TestBuildTool_WriteWarning(t *testing.T) {
	def, _ := LookupTool("delete_connection")
	tool := BuildTool(def)

	if !strings.Contains(tool.Description, "WRITE OPERATION") {
		t.Errorf("expected write warning in description: %q", tool.Description)
	}
	if !strings.Contains(tool.Description, "Permanently removes resources") {
		t.Errorf("expected DELETE context in description: %q", tool.Description)
	}
}

func TestBuildTool_ParamHints(t *testing.T) {
	def, _ := LookupTool("get_connection_details")
	tool := BuildTool(def)

	if !strings.Contains(tool.Description, "connection_id (format: conn_xxxxxxxx)") {
		t.Errorf("expected connection_id hint in description: %q", tool.Description)
	}
}

func TestBuildTool_ConfigExample(t *testing.T) {
	def, _ := LookupTool("create_connection")
	tool := BuildTool(def)

	if !strings.Contains(tool.Description, "Configuration example:") {
		t.Errorf("expected config example header: %q", tool.Description)
	}
	if !strings.Contains(tool.Description, "- service: Connector type (postgres, salesforce, etc.)") {
		t.Errorf("expected service example line: %q", tool.Description)
	}
}

func TestBuildTool_CommonUpdates(t *testing.T) {
	def, _ := LookupTool("modify_connection")
	tool := BuildTool(def)

	if !strings.Contains(tool.Description, "Common updates:") {
		t.Errorf("expected common updates header: %q", tool.Description)
	}
	if !strings.Contains(tool.Description, "- paused: Boolean to pause/resume") {
		t.Errorf("expected paused update line: %q", tool.Description)
	}
}

// --- Handler tests ---

func callTool(t *testing.T, d *Dispatcher, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	handler := toolHandler(d, name)
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	result, err := handler(t.Context(), request)
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestToolHandler_Success(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Success","data":{"id":"acc_1","name":"Acme"}}`))
	})

	d := testDispatcher(srv.URL, false)
	result := callTool(t, d, "get_account_info", nil)

	if result.IsError {
		t.Fatalf("expected success, got error: %v", result.Content)
	}
	text := resultText(t, result)
	if !strings.Contains(text, `"name": "Acme"`) {
		t.Errorf("expected indented JSON result, got %q", text)
	}
}

func TestToolHandler_HttpStatusError(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
	})

	d := testDispatcher(srv.URL, false)
	result := callTool(t, d, "get_connection_details", map[string]any{"connection_id": "conn_x"})

	if !result.IsError {
		t.Fatal("expected error result")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "404") || !strings.Contains(text, "not found") {
		t.Errorf("expected text with status and message, got %q", text)
	}
}

func TestToolHandler_UnknownTool(t *testing.T) {
	srv, calls := countingServer(t, nil)

	d := testDispatcher(srv.URL, true)
	result := callTool(t, d, "does_not_exist", map[string]any{"anything": "x"})

	if !result.IsError {
		t.Fatal("expected error result")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "unknown tool: does_not_exist") {
		t.Errorf("expected unknown tool message, got %q", text)
	}
	if *calls != 0 {
		t.Errorf("expected zero network calls, got %d", *calls)
	}
}

func TestToolHandler_InvalidRequestBody(t *testing.T) {
	srv, calls := countingServer(t, nil)

	d := testDispatcher(srv.URL, true)
	result := callTool(t, d, "create_group", map[string]any{"request_body": "{bad"})

	if !result.IsError {
		t.Fatal("expected error result")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "invalid JSON in request_body") {
		t.Errorf("expected invalid body message, got %q", text)
	}
	if *calls != 0 {
		t.Errorf("expected zero network calls, got %d", *calls)
	}
}

func TestRegisterTools_CountsRegistry(t *testing.T) {
	// RegisterTools walks the whole registry; the count must match Tools().
	srv, _ := countingServer(t, nil)
	d := testDispatcher(srv.URL, false)

	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(true))
	if got, want := RegisterTools(s, d), len(Tools()); got != want {
		t.Errorf("expected %d tools registered, got %d", want, got)
	}
}
