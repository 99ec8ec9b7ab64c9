package fivetran

import (
	"net/url"
	"regexp"
	"strings"
)

// placeholderPattern matches {name} placeholders in endpoint templates.
var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// EndpointParams returns the placeholder names in a template, in order of appearance.
func EndpointParams(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		params = append(params, m[1])
	}
	return params
}

// ExpandEndpoint substitutes every {name} placeholder in the template with the
// matching path parameter, escaping values for use in a URL path. Every
// placeholder must be satisfied or a MissingParameterError is returned.
func ExpandEndpoint(template string, params map[string]string) (string, error) {
	endpoint := template
	for _, name := range EndpointParams(template) {
		val, ok := params[name]
		if !ok || val == "" {
			return "", &MissingParameterError{Param: name, Endpoint: template}
		}
		endpoint = strings.ReplaceAll(endpoint, "{"+name+"}", url.PathEscape(val))
	}
	return endpoint, nil
}
