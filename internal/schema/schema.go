// Package schema merges cluster property descriptors from agent metadata
// sources into one lookup used by the validators.
package schema

import "sort"

// ParameterType of a cluster property value
type ParameterType string

const (
	TypeBoolean    ParameterType = "boolean"
	TypeInteger    ParameterType = "integer"
	TypePercentage ParameterType = "percentage"
	TypeTime       ParameterType = "time"
	TypeSelect     ParameterType = "select"
	TypeString     ParameterType = "string"
)

// ParameterDefinition describes one cluster property as declared by an
// agent metadata source.
type ParameterDefinition struct {
	Name       string        `yaml:"name"`
	Type       ParameterType `yaml:"type"`
	Default    string        `yaml:"default,omitempty"`
	EnumValues []string      `yaml:"enum_values,omitempty"`
	ShortDesc  string        `yaml:"shortdesc,omitempty"`
	LongDesc   string        `yaml:"longdesc,omitempty"`
	Advanced   bool          `yaml:"advanced,omitempty"`
	Deprecated bool          `yaml:"deprecated,omitempty"`
}

// AgentMetadata is one ordered source of parameter definitions.
type AgentMetadata interface {
	Parameters() []ParameterDefinition
}

// Merged is the total name to definition lookup built from all sources.
type Merged map[string]ParameterDefinition

// Merge folds the parameter lists of all sources into one lookup. Agent
// namespaces are disjoint in practice; on a name collision the first
// source wins. A source contributing zero parameters is legal.
func Merge(sources []AgentMetadata) Merged {
	merged := make(Merged)
	for _, source := range sources {
		for _, param := range source.Parameters() {
			if _, seen := merged[param.Name]; !seen {
				merged[param.Name] = param
			}
		}
	}
	return merged
}

// AllowedNames returns the sorted schema keys. Forbidden names stay
// members: their values are still validated even though set/remove is
// separately blocked.
func (m Merged) AllowedNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
