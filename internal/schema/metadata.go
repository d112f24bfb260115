package schema

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed descriptors/*.yaml
var descriptorFS embed.FS

// descriptorCache holds parsed descriptors to avoid re-parsing
var descriptorCache = map[string]*Descriptor{}

// descriptorFiles maps built-in agent names to embedded file paths.
// Cluster properties are declared across the pacemaker daemons plus the
// tool's own extension descriptor, in this order.
var descriptorFiles = map[string]string{
	"pacemaker-controld":   "descriptors/pacemaker-controld.yaml",
	"pacemaker-based":      "descriptors/pacemaker-based.yaml",
	"pacemaker-schedulerd": "descriptors/pacemaker-schedulerd.yaml",
	"pacectl-extensions":   "descriptors/pacectl-extensions.yaml",
}

// BuiltinAgentOrder is the merge order of the embedded descriptors.
var BuiltinAgentOrder = []string{
	"pacemaker-controld",
	"pacemaker-based",
	"pacemaker-schedulerd",
	"pacectl-extensions",
}

// Descriptor is one agent metadata file.
type Descriptor struct {
	Agent   string                `yaml:"agent"`
	Version string                `yaml:"version,omitempty"`
	Params  []ParameterDefinition `yaml:"parameters"`
}

// Parameters implements AgentMetadata.
func (d *Descriptor) Parameters() []ParameterDefinition {
	return d.Params
}

// GetBuiltinDescriptor returns an embedded descriptor by agent name, or
// nil if not found.
func GetBuiltinDescriptor(name string) *Descriptor {
	if cached, ok := descriptorCache[name]; ok {
		return cached
	}

	path, ok := descriptorFiles[name]
	if !ok {
		return nil
	}

	data, err := descriptorFS.ReadFile(path)
	if err != nil {
		return nil
	}

	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil
	}

	descriptorCache[name] = &desc
	return &desc
}

// BuiltinSources returns the embedded descriptors in merge order.
func BuiltinSources() ([]AgentMetadata, error) {
	sources := make([]AgentMetadata, 0, len(BuiltinAgentOrder))
	for _, name := range BuiltinAgentOrder {
		desc := GetBuiltinDescriptor(name)
		if desc == nil {
			return nil, fmt.Errorf("built-in metadata descriptor %q is missing or malformed", name)
		}
		sources = append(sources, desc)
	}
	return sources, nil
}

// LoadDescriptor parses an agent metadata descriptor from a file, for
// schemas supplied by the operator alongside the built-ins.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata descriptor: %w", err)
	}

	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata descriptor %s: %w", path, err)
	}

	return &desc, nil
}
