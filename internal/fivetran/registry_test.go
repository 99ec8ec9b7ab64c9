package fivetran

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupTool_Known(t *testing.T) {
	def, err := LookupTool("list_connections")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != "list_connections" {
		t.Errorf("expected name list_connections, got %s", def.Name)
	}
	if def.Method != MethodGet {
		t.Errorf("expected GET, got %s", def.Method)
	}
	if !def.AutoPaginate {
		t.Error("expected list_connections to auto-paginate")
	}
}

func TestLookupTool_Unknown(t *testing.T) {
	_, err := LookupTool("does_not_exist")
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	var unknown *UnknownToolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownToolError, got %T", err)
	}
	if !strings.Contains(err.Error(), "does_not_exist") {
		t.Errorf("error should name the tool: %v", err)
	}
}

func TestTools_SortedAndNamed(t *testing.T) {
	defs := Tools()
	if len(defs) == 0 {
		t.Fatal("expected non-empty registry")
	}
	for i, def := range defs {
		if def.Name == "" {
			t.Errorf("definition %d has empty name", i)
		}
		if i > 0 && defs[i-1].Name >= def.Name {
			t.Errorf("definitions not sorted: %s >= %s", defs[i-1].Name, def.Name)
		}
	}
}

// Every registry entry must be internally consistent: a closed-set method,
// a /v1 endpoint, placeholders and declared params covered by the shared
// parameter table, and auto-pagination on GET list endpoints only.
func TestRegistry_EntriesValid(t *testing.T) {
	valid := map[Method]bool{MethodGet: true, MethodPost: true, MethodPatch: true, MethodDelete: true}

	for _, def := range Tools() {
		if !valid[def.Method] {
			t.Errorf("tool %s has unsupported method %q", def.Name, def.Method)
		}
		if !strings.HasPrefix(def.Endpoint, "/v1/") {
			t.Errorf("tool %s has invalid endpoint %q", def.Name, def.Endpoint)
		}
		for _, p := range EndpointParams(def.Endpoint) {
			if _, ok := LookupParam(p); !ok {
				t.Errorf("tool %s placeholder %q has no parameter definition", def.Name, p)
			}
		}
		for _, p := range def.Params {
			if _, ok := LookupParam(p); !ok {
				t.Errorf("tool %s declared param %q has no parameter definition", def.Name, p)
			}
		}
		if def.AutoPaginate {
			if def.Method != MethodGet {
				t.Errorf("tool %s auto-paginates with non-GET method %s", def.Name, def.Method)
			}
			for _, p := range def.Params {
				if p == bodyParam {
					t.Errorf("tool %s auto-paginates but declares a request body", def.Name)
				}
			}
		}
	}
}
