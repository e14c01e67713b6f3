package permissions

import (
	"sort"
	"strings"
)

// Definition describes an admin endpoint.
type Definition struct {
	Key    string `json:"key"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Label  string `json:"label"`
	Module string `json:"module"`
}

// Key builds a permission key from method and path.
func Key(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Definitions returns a copy of all endpoint definitions.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition registered for method and path.
func Lookup(method, path string) (Definition, bool) {
	def, ok := definitionMap[Key(method, path)]
	return def, ok
}

// Modules lists the distinct module names in sorted order.
func Modules() []string {
	seen := make(map[string]struct{}, len(definitions))
	out := make([]string, 0, len(definitions))
	for _, def := range definitions {
		if _, ok := seen[def.Module]; ok {
			continue
		}
		seen[def.Module] = struct{}{}
		out = append(out, def.Module)
	}
	sort.Strings(out)
	return out
}

func newDefinition(method, path, label, module string) Definition {
	upperMethod := strings.ToUpper(method)
	return Definition{
		Key:    Key(upperMethod, path),
		Method: upperMethod,
		Path:   path,
		Label:  label,
		Module: module,
	}
}

// definitions is the ordered list of admin endpoints. Paths are relative to /admin.
var definitions = []Definition{
	newDefinition("GET", "/users", "List Users", "Users"),
	newDefinition("GET", "/users/:id", "Get User", "Users"),
	newDefinition("PUT", "/users/:id", "Update User", "Users"),
	newDefinition("POST", "/users/:id/reset-usage", "Reset User Usage", "Users"),
	newDefinition("GET", "/users/:id/payments", "List User Payments", "Payments"),
	newDefinition("GET", "/permissions", "List Admin Endpoints", "System"),
}

var definitionMap = func() map[string]Definition {
	out := make(map[string]Definition, len(definitions))
	for _, def := range definitions {
		out[def.Key] = def
	}
	return out
}()
