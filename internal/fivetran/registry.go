package fivetran

import "sort"

// Method is the closed set of HTTP verbs a tool may use.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// bodyParam is the declared name of the opaque JSON request-body parameter.
const bodyParam = "request_body"

// FieldHint documents one field of a request body in a tool description.
type FieldHint struct {
	Key  string
	Desc string
}

// ToolDefinition describes one Fivetran API operation exposed as an MCP tool.
// Definitions are immutable and loaded once at process start.
type ToolDefinition struct {
	Name          string
	Description   string
	Method        Method
	Endpoint      string      // URL path template with {param} placeholders
	Params        []string    // declared parameters (placeholders and/or request_body)
	AutoPaginate  bool        // GET list endpoints that follow next_cursor
	ConfigExample []FieldHint // appended to the description as a body example
	CommonUpdates []FieldHint // appended to the description for PATCH tools
}

// ParamDefinition describes a caller-facing parameter for schema generation.
type ParamDefinition struct {
	Type        string // "string" or "integer"
	Description string
}

// paramDefinitions is the shared parameter table used to build tool schemas.
var paramDefinitions = map[string]ParamDefinition{
	"connection_id": {
		Type:        "string",
		Description: "Connection identifier (format: conn_xxxxxxxx). Get from list_connections.",
	},
	"destination_id": {
		Type:        "string",
		Description: "Destination identifier (format: dest_xxxxxxxx). Get from list_destinations.",
	},
	"group_id": {
		Type:        "string",
		Description: "Group identifier (format: group_xxxxxxxx). Get from list_groups.",
	},
	"user_id": {
		Type:        "string",
		Description: "User identifier. Get from list_users.",
	},
	"team_id": {
		Type:        "string",
		Description: "Team identifier. Get from list_teams.",
	},
	"webhook_id": {
		Type:        "string",
		Description: "Webhook identifier. Get from list_webhooks.",
	},
	"transformation_id": {
		Type:        "string",
		Description: "Transformation identifier. Get from list_transformations.",
	},
	"key_id": {
		Type:        "string",
		Description: "System key identifier. Get from list_system_keys.",
	},
	"schema_name": {
		Type:        "string",
		Description: "Database schema name. Get from connection schema configuration.",
	},
	"table_name": {
		Type:        "string",
		Description: "Database table name. Get from connection schema configuration.",
	},
	"column_name": {
		Type:        "string",
		Description: "Database column name. Get from table column configuration.",
	},
	bodyParam: {
		Type:        "string",
		Description: "JSON configuration string. Structure varies by operation - see tool description for examples.",
	},
}

// registry is the static, append-only tool catalog. No entry may be added
// or removed at runtime.
var registry = map[string]ToolDefinition{
	// Account Operations
	"get_account_info": {
		Description: "Get account information including name, region, and subscription details.",
		Method:      MethodGet,
		Endpoint:    "/v1/account/info",
	},

	// Connection Management
	"list_connections": {
		Description:  "List all data source connections with status and configuration details.",
		Method:       MethodGet,
		Endpoint:     "/v1/connections",
		AutoPaginate: true,
	},
	"get_connection_details": {
		Description: "Get detailed information about a specific connection including status, configuration, and sync history.",
		Method:      MethodGet,
		Endpoint:    "/v1/connections/{connection_id}",
		Params:      []string{"connection_id"},
	},
	"create_connection": {
		Description: "Create a new data source connection with specified configuration.",
		Method:      MethodPost,
		Endpoint:    "/v1/connections",
		Params:      []string{bodyParam},
		ConfigExample: []FieldHint{
			{"service", "Connector type (postgres, salesforce, etc.)"},
			{"group_id", "Target group for organization"},
			{"schema", "Destination schema name"},
			{"config", "Service-specific connection settings"},
		},
	},
	"modify_connection": {
		Description: "Update connection settings like sync frequency, pause status, or configuration.",
		Method:      MethodPatch,
		Endpoint:    "/v1/connections/{connection_id}",
		Params:      []string{"connection_id", bodyParam},
		CommonUpdates: []FieldHint{
			{"sync_frequency", "Minutes between syncs (60, 360, 1440)"},
			{"paused", "Boolean to pause/resume"},
			{"daily_sync_time", "Time for daily syncs (HH:MM format)"},
		},
	},
	"delete_connection": {
		Description: "Permanently delete a connection and all associated data.",
		Method:      MethodDelete,
		Endpoint:    "/v1/connections/{connection_id}",
		Params:      []string{"connection_id"},
	},
	"get_connection_state": {
		Description: "Get detailed sync state including schema-level status and sync progress.",
		Method:      MethodGet,
		Endpoint:    "/v1/connections/{connection_id}/state",
		Params:      []string{"connection_id"},
	},
	"modify_connection_state": {
		Description: "Update connection sync state or trigger historical re-sync.",
		Method:      MethodPatch,
		Endpoint:    "/v1/connections/{connection_id}/state",
		Params:      []string{"connection_id", bodyParam},
	},
	"sync_connection": {
		Description: "Manually trigger data synchronization for a connection.",
		Method:      MethodPost,
		Endpoint:    "/v1/connections/{connection_id}/sync",
		Params:      []string{"connection_id", bodyParam},
	},
	"resync_connection": {
		Description: "Trigger full historical re-sync of all data (expensive operation).",
		Method:      MethodPost,
		Endpoint:    "/v1/connections/{connection_id}/resync",
		Params:      []string{"connection_id", bodyParam},
	},
	"resync_tables": {
		Description: "Re-sync specific tables instead of entire connection (more efficient).",
		Method:      MethodPost,
		Endpoint:    "/v1/connections/{connection_id}/schemas/tables/resync",
		Params:      []string{"connection_id", bodyParam},
	},
	"run_connection_setup_tests": {
		Description: "Run diagnostic tests to validate connection setup and credentials.",
		Method:      MethodPost,
		Endpoint:    "/v1/connections/{connection_id}/test",
		Params:      []string{"connection_id"},
	},
	"get_connection_schema_config": {
		Description: "View which schemas and tables are enabled for syncing.",
		Method:      MethodGet,
		Endpoint:    "/v1/connections/{connection_id}/schemas",
		Params:      []string{"connection_id"},
	},
	"modify_connection_table_config": {
		Description: "Enable or disable syncing for specific tables to control data flow and costs.",
		Method:      MethodPatch,
		Endpoint:    "/v1/connections/{connection_id}/schemas/{schema_name}/tables/{table_name}",
		Params:      []string{"connection_id", "schema_name", "table_name", bodyParam},
	},
	"get_connection_column_config": {
		Description: "View column-level configuration for a specific table.",
		Method:      MethodGet,
		Endpoint:    "/v1/connections/{connection_id}/schemas/{schema_name}/tables/{table_name}/columns",
		Params:      []string{"connection_id", "schema_name", "table_name"},
	},
	"modify_connection_column_config": {
		Description: "Configure individual columns (enable/disable, hashing for PII, etc.).",
		Method:      MethodPatch,
		Endpoint:    "/v1/connections/{connection_id}/schemas/{schema_name}/tables/{table_name}/columns/{column_name}",
		Params:      []string{"connection_id", "schema_name", "table_name", "column_name", bodyParam},
	},

	// Destination Management
	"list_destinations": {
		Description:  "List all data warehouse destinations configured in your account.",
		Method:       MethodGet,
		Endpoint:     "/v1/destinations",
		AutoPaginate: true,
	},
	"get_destination_details": {
		Description: "Get detailed configuration and status for a specific destination.",
		Method:      MethodGet,
		Endpoint:    "/v1/destinations/{destination_id}",
		Params:      []string{"destination_id"},
	},
	"create_destination": {
		Description: "Create a new data warehouse destination (requires group_id).",
		Method:      MethodPost,
		Endpoint:    "/v1/destinations",
		Params:      []string{bodyParam},
		ConfigExample: []FieldHint{
			{"group_id", "Group to associate with destination"},
			{"service", "Destination type (snowflake, bigquery, etc.)"},
			{"region", "Cloud region"},
			{"config", "Service-specific connection settings"},
		},
	},
	"modify_destination": {
		Description: "Update destination configuration or settings.",
		Method:      MethodPatch,
		Endpoint:    "/v1/destinations/{destination_id}",
		Params:      []string{"destination_id", bodyParam},
	},
	"delete_destination": {
		Description: "Permanently delete a destination and all associated connections.",
		Method:      MethodDelete,
		Endpoint:    "/v1/destinations/{destination_id}",
		Params:      []string{"destination_id"},
	},
	"run_destination_setup_tests": {
		Description: "Validate destination connectivity and permissions.",
		Method:      MethodPost,
		Endpoint:    "/v1/destinations/{destination_id}/test",
		Params:      []string{"destination_id"},
	},

	// Group Management
	"list_groups": {
		Description:  "List all groups that organize connections and destinations.",
		Method:       MethodGet,
		Endpoint:     "/v1/groups",
		AutoPaginate: true,
	},
	"get_group_details": {
		Description: "Get detailed information about a specific group including associated resources.",
		Method:      MethodGet,
		Endpoint:    "/v1/groups/{group_id}",
		Params:      []string{"group_id"},
	},
	"create_group": {
		Description: "Create a new group to organize connections and control access.",
		Method:      MethodPost,
		Endpoint:    "/v1/groups",
		Params:      []string{bodyParam},
		ConfigExample: []FieldHint{
			{"name", "Display name for the group"},
		},
	},
	"modify_group": {
		Description: "Update group settings and configuration.",
		Method:      MethodPatch,
		Endpoint:    "/v1/groups/{group_id}",
		Params:      []string{"group_id", bodyParam},
	},
	"delete_group": {
		Description: "Permanently delete a group and all associated resources.",
		Method:      MethodDelete,
		Endpoint:    "/v1/groups/{group_id}",
		Params:      []string{"group_id"},
	},
	"list_connections_in_group": {
		Description:  "List all connections within a specific group.",
		Method:       MethodGet,
		Endpoint:     "/v1/groups/{group_id}/connections",
		Params:       []string{"group_id"},
		AutoPaginate: true,
	},

	// User Management
	"list_users": {
		Description:  "List all users in your account with roles and status information.",
		Method:       MethodGet,
		Endpoint:     "/v1/users",
		AutoPaginate: true,
	},
	"get_user_details": {
		Description: "Get detailed information about a specific user including permissions.",
		Method:      MethodGet,
		Endpoint:    "/v1/users/{user_id}",
		Params:      []string{"user_id"},
	},
	"create_user": {
		Description: "Invite a new user to your Fivetran account.",
		Method:      MethodPost,
		Endpoint:    "/v1/users",
		Params:      []string{bodyParam},
		ConfigExample: []FieldHint{
			{"email", "User's email address"},
			{"given_name", "First name"},
			{"family_name", "Last name"},
			{"role", "Account role (Owner, Admin, Member, ReadOnly)"},
		},
	},
	"modify_user": {
		Description: "Update user information and account role.",
		Method:      MethodPatch,
		Endpoint:    "/v1/users/{user_id}",
		Params:      []string{"user_id", bodyParam},
	},
	"delete_user": {
		Description: "Remove a user from your account permanently.",
		Method:      MethodDelete,
		Endpoint:    "/v1/users/{user_id}",
		Params:      []string{"user_id"},
	},

	// Team Management
	"list_teams": {
		Description:  "List all teams and their configurations.",
		Method:       MethodGet,
		Endpoint:     "/v1/teams",
		AutoPaginate: true,
	},
	"create_team": {
		Description: "Create a new team for organizing user permissions.",
		Method:      MethodPost,
		Endpoint:    "/v1/teams",
		Params:      []string{bodyParam},
		ConfigExample: []FieldHint{
			{"name", "Team name"},
			{"description", "Team purpose and description"},
		},
	},
	"get_team_details": {
		Description: "Get detailed information about a specific team.",
		Method:      MethodGet,
		Endpoint:    "/v1/teams/{team_id}",
		Params:      []string{"team_id"},
	},

	// Webhook Management
	"list_webhooks": {
		Description:  "List all webhook configurations for event monitoring.",
		Method:       MethodGet,
		Endpoint:     "/v1/webhooks",
		AutoPaginate: true,
	},
	"create_account_webhook": {
		Description: "Create account-level webhook for monitoring all events.",
		Method:      MethodPost,
		Endpoint:    "/v1/webhooks/account",
		Params:      []string{bodyParam},
		ConfigExample: []FieldHint{
			{"url", "Webhook endpoint URL"},
			{"events", "Array of events to monitor"},
			{"active", "Boolean to enable/disable"},
		},
	},
	"create_group_webhook": {
		Description: "Create group-specific webhook for targeted monitoring.",
		Method:      MethodPost,
		Endpoint:    "/v1/webhooks/group/{group_id}",
		Params:      []string{"group_id", bodyParam},
	},
	"get_webhook_details": {
		Description: "Get configuration and status for a specific webhook.",
		Method:      MethodGet,
		Endpoint:    "/v1/webhooks/{webhook_id}",
		Params:      []string{"webhook_id"},
	},
	"test_webhook": {
		Description: "Send test event to webhook endpoint to validate configuration.",
		Method:      MethodPost,
		Endpoint:    "/v1/webhooks/{webhook_id}/test",
		Params:      []string{"webhook_id", bodyParam},
	},

	// Transformation Management
	"list_transformations": {
		Description:  "List all dbt transformations and their execution status.",
		Method:       MethodGet,
		Endpoint:     "/v1/transformations",
		AutoPaginate: true,
	},
	"run_transformation": {
		Description: "Manually execute a dbt transformation.",
		Method:      MethodPost,
		Endpoint:    "/v1/transformations/{transformation_id}/run",
		Params:      []string{"transformation_id"},
	},
	"list_transformation_projects": {
		Description:  "List all dbt transformation projects in your account.",
		Method:       MethodGet,
		Endpoint:     "/v1/transformation-projects",
		AutoPaginate: true,
	},
	"create_transformation_project": {
		Description: "Create a new dbt transformation project.",
		Method:      MethodPost,
		Endpoint:    "/v1/transformation-projects",
		Params:      []string{bodyParam},
	},

	// System Administration
	"list_system_keys": {
		Description:  "List all API keys for programmatic access.",
		Method:       MethodGet,
		Endpoint:     "/v1/system-keys",
		AutoPaginate: true,
	},
	"create_system_key": {
		Description: "Create new API key for automated processes.",
		Method:      MethodPost,
		Endpoint:    "/v1/system-keys",
		Params:      []string{bodyParam},
		ConfigExample: []FieldHint{
			{"name", "Descriptive name for the key"},
			{"expiry_date", "Optional expiration date"},
		},
	},
	"rotate_system_key": {
		Description: "Rotate API key for security compliance.",
		Method:      MethodPost,
		Endpoint:    "/v1/system-keys/{key_id}/rotate",
		Params:      []string{"key_id"},
	},
}

func init() {
	// Stamp names onto the definitions so lookups return self-describing values.
	for name, def := range registry {
		def.Name = name
		registry[name] = def
	}
}

// LookupTool returns the definition for a tool name, or an UnknownToolError.
func LookupTool(name string) (ToolDefinition, error) {
	def, ok := registry[name]
	if !ok {
		return ToolDefinition{}, &UnknownToolError{Name: name}
	}
	return def, nil
}

// Tools returns all tool definitions sorted by name for deterministic registration.
func Tools() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// LookupParam returns the shared definition for a parameter name.
func LookupParam(name string) (ParamDefinition, bool) {
	def, ok := paramDefinitions[name]
	return def, ok
}
