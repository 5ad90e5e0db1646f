// Package filter turns a generic filter-group payload into SQL conditions
// composed onto an existing query. Field resolution goes through a per-entity
// schema built at startup, so no reflection happens at query time.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Group is a flat AND/OR combination of rules. Groups do not nest.
type Group struct {
	Logic string `json:"logic"`
	Rules []Rule `json:"rules"`
}

// Rule names a target field, an operator and a string-encoded value.
// A nil Value carries null semantics, distinct from an empty string.
type Rule struct {
	Field string  `json:"field"`
	Op    string  `json:"op"`
	Value *string `json:"value"`
}

// Parse decodes the serialized filter-group JSON carried by grid requests.
// An empty payload means "no filter".
func Parse(raw string) (*Group, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var g Group
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("malformed filter json: %w", err)
	}
	return &g, nil
}

// ValueError reports a value that could not be coerced to its field's type.
// Callers must treat it as a bad request, not a server fault.
type ValueError struct {
	Field string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("filter: bad value %q for field %s: %v", e.Value, e.Field, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }
