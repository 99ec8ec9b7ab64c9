// Command schema-split splits a full Fivetran OpenAPI definition into one
// file per endpoint, grouped by resource:
//
//	open-api-definitions/<resource>/<operation_id>.json
//
// Each output document carries only the component schemas its operation
// references, resolved recursively.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var versionPrefix = regexp.MustCompile(`^/v\d+/`)

// operationMethods is the fixed set of methods scanned per path item.
var operationMethods = []string{"get", "post", "put", "patch", "delete"}

// endpointEntry is one row of the generated endpoint index.
type endpointEntry struct {
	File    string `json:"file"`
	Path    string `json:"path"`
	Method  string `json:"method"`
	Summary string `json:"summary"`
}

// findRefs recursively collects every $ref value in a decoded JSON document.
func findRefs(node any, refs map[string]bool) {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			refs[ref] = true
		}
		for _, child := range v {
			findRefs(child, refs)
		}
	case []any:
		for _, child := range v {
			findRefs(child, refs)
		}
	}
}

// resolveComponentRefs resolves $ref paths to component schemas, recursively
// including their dependencies.
func resolveComponentRefs(components map[string]any, refs map[string]bool) map[string]any {
	resolved := map[string]any{}
	processed := map[string]bool{}

	var resolve func(ref string)
	resolve = func(ref string) {
		if processed[ref] {
			return
		}
		processed[ref] = true

		// Parse refs like "#/components/schemas/ConnectionResponse"
		const prefix = "#/components/"
		if !strings.HasPrefix(ref, prefix) {
			return
		}
		parts := strings.Split(ref[len(prefix):], "/")
		if len(parts) != 2 {
			return
		}
		componentType, componentName := parts[0], parts[1]

		group, ok := components[componentType].(map[string]any)
		if !ok {
			return
		}
		component, ok := group[componentName]
		if !ok {
			return
		}

		sub, ok := resolved[componentType].(map[string]any)
		if !ok {
			sub = map[string]any{}
			resolved[componentType] = sub
		}
		sub[componentName] = component

		nested := map[string]bool{}
		findRefs(component, nested)
		for nestedRef := range nested {
			resolve(nestedRef)
		}
	}

	for ref := range refs {
		resolve(ref)
	}
	return resolved
}

// extractEndpointDoc builds a standalone document for one operation.
func extractEndpointDoc(doc map[string]any, path, method string, operation map[string]any) map[string]any {
	version, _ := doc["openapi"].(string)
	if version == "" {
		version = "3.0.1"
	}
	title, _ := operation["summary"].(string)
	if title == "" {
		title = strings.ToUpper(method) + " " + path
	}
	description, _ := operation["description"].(string)

	endpointDoc := map[string]any{
		"openapi": version,
		"info": map[string]any{
			"title":       title,
			"description": description,
		},
		"path":      path,
		"method":    strings.ToUpper(method),
		"operation": operation,
	}

	refs := map[string]bool{}
	findRefs(operation, refs)
	if len(refs) > 0 {
		components, _ := doc["components"].(map[string]any)
		if resolved := resolveComponentRefs(components, refs); len(resolved) > 0 {
			endpointDoc["components"] = resolved
		}
	}

	return endpointDoc
}

// resourceFromPath extracts the resource name from an API path:
// /v1/connections -> connections, /v1/groups/{groupId}/connections -> groups.
func resourceFromPath(path string) string {
	trimmed := versionPrefix.ReplaceAllString(path, "")
	for _, part := range strings.Split(trimmed, "/") {
		if part != "" && !strings.HasPrefix(part, "{") {
			return part
		}
	}
	return "other"
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func run(inputFile, outputDir string) error {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputFile, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", inputFile, err)
	}

	paths, _ := doc["paths"].(map[string]any)

	// Group endpoints by resource
	resources := map[string]map[string]any{}
	for path, pathItem := range paths {
		resource := resourceFromPath(path)
		if resources[resource] == nil {
			resources[resource] = map[string]any{}
		}
		resources[resource][path] = pathItem
	}
	fmt.Printf("Found %d resources\n\n", len(resources))

	resourceNames := make([]string, 0, len(resources))
	for name := range resources {
		resourceNames = append(resourceNames, name)
	}
	sort.Strings(resourceNames)

	allMappings := map[string]map[string]endpointEntry{}
	totalEndpoints := 0

	for _, resourceName := range resourceNames {
		fmt.Printf("Processing %s...\n", resourceName)

		resourceDir := filepath.Join(outputDir, resourceName)
		if err := os.MkdirAll(resourceDir, 0o755); err != nil {
			return err
		}

		mapping := map[string]endpointEntry{}

		resourcePaths := resources[resourceName]
		sortedPaths := make([]string, 0, len(resourcePaths))
		for p := range resourcePaths {
			sortedPaths = append(sortedPaths, p)
		}
		sort.Strings(sortedPaths)

		for _, path := range sortedPaths {
			pathItem, ok := resourcePaths[path].(map[string]any)
			if !ok {
				continue
			}
			for _, method := range operationMethods {
				operation, ok := pathItem[method].(map[string]any)
				if !ok {
					continue
				}
				operationID, _ := operation["operationId"].(string)
				if operationID == "" {
					fmt.Printf("  WARNING: No operationId for %s %s, skipping\n", strings.ToUpper(method), path)
					continue
				}

				endpointDoc := extractEndpointDoc(doc, path, method, operation)
				outputFile := filepath.Join(resourceDir, operationID+".json")
				if err := writeJSON(outputFile, endpointDoc); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputFile, err)
				}

				summary, _ := operation["summary"].(string)
				mapping[operationID] = endpointEntry{
					File:    filepath.Join(resourceName, operationID+".json"),
					Path:    path,
					Method:  strings.ToUpper(method),
					Summary: summary,
				}
				totalEndpoints++
				fmt.Printf("  Created: %s.json\n", operationID)
			}
		}

		allMappings[resourceName] = mapping
		fmt.Println()
	}

	indexFile := filepath.Join(outputDir, "endpoint-index.json")
	if err := writeJSON(indexFile, allMappings); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	fmt.Printf("Created endpoint index: %s\n", indexFile)
	fmt.Printf("\nDone! Split into %d endpoint files across %d resources.\n", totalEndpoints, len(allMappings))

	return nil
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: schema-split <input_file> <output_dir>")
		fmt.Fprintln(os.Stderr, "Example: schema-split fivetran-open-api-definition.json open-api-definitions")
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
