// Package differ compares cluster property sets and translates the raw
// patch into operator-readable lines.
package differ

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wI2L/jsondiff"
)

// ChangeType indicates what kind of difference was detected
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeUpdated  ChangeType = "updated"
	ChangeNoChange ChangeType = "no_change"
)

// PropertyChange represents the difference for a single property
type PropertyChange struct {
	Name     string     `json:"name"`
	Type     ChangeType `json:"type"`
	OldValue string     `json:"oldValue,omitempty"`
	NewValue string     `json:"newValue,omitempty"`
}

// Result contains the complete diff result
type Result struct {
	HasChanges bool             `json:"hasChanges"`
	Patch      jsondiff.Patch   `json:"patch,omitempty"` // Raw JSON patch over the property map
	Changes    []PropertyChange `json:"changes"`
}

// CompareProperties diffs the configured property set against a proposed
// one. Both maps are caller-supplied snapshots.
func CompareProperties(current, proposed map[string]string) (*Result, error) {
	if current == nil {
		current = map[string]string{}
	}
	if proposed == nil {
		proposed = map[string]string{}
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current properties: %w", err)
	}
	proposedJSON, err := json.Marshal(proposed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal proposed properties: %w", err)
	}

	patch, err := jsondiff.CompareJSON(currentJSON, proposedJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to compute property diff: %w", err)
	}

	result := &Result{
		HasChanges: len(patch) > 0,
		Patch:      patch,
		Changes:    []PropertyChange{},
	}

	for _, op := range patch {
		name := pointerToName(op.Path)
		switch op.Type {
		case jsondiff.OperationAdd:
			result.Changes = append(result.Changes, PropertyChange{
				Name:     name,
				Type:     ChangeAdded,
				NewValue: valueString(op.Value),
			})
		case jsondiff.OperationRemove:
			result.Changes = append(result.Changes, PropertyChange{
				Name:     name,
				Type:     ChangeRemoved,
				OldValue: current[name],
			})
		case jsondiff.OperationReplace:
			result.Changes = append(result.Changes, PropertyChange{
				Name:     name,
				Type:     ChangeUpdated,
				OldValue: current[name],
				NewValue: valueString(op.Value),
			})
		}
	}

	return result, nil
}

// Translate changes to english
func Translate(changes []PropertyChange) []string {
	if len(changes) == 0 {
		return nil
	}

	translations := make([]string, 0, len(changes))
	for _, change := range changes {
		switch change.Type {
		case ChangeAdded:
			translations = append(translations,
				fmt.Sprintf("property '%s' added with value '%s'", change.Name, change.NewValue))
		case ChangeRemoved:
			translations = append(translations,
				fmt.Sprintf("property '%s' removed (was '%s')", change.Name, change.OldValue))
		case ChangeUpdated:
			translations = append(translations,
				fmt.Sprintf("property '%s' changed from '%s' to '%s'", change.Name, change.OldValue, change.NewValue))
		}
	}
	return translations
}

// pointerToName decodes a single-level JSON pointer path
func pointerToName(path string) string {
	name := strings.TrimPrefix(path, "/")
	name = strings.ReplaceAll(name, "~1", "/")
	name = strings.ReplaceAll(name, "~0", "~")
	return name
}

func valueString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
