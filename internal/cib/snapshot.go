package cib

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultPropertySetID is created when no property set exists yet.
const DefaultPropertySetID = "cib-bootstrap-options"

// PropertySet is one named group of cluster properties. Only the first
// set is in effect; later sets are kept for completeness.
type PropertySet struct {
	ID      string            `yaml:"id" json:"id"`
	Options map[string]string `yaml:"options" json:"options"`
}

// Node is a cluster member with its attributes, consulted by constraint
// rule evaluation.
type Node struct {
	Name       string            `yaml:"name" json:"name"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Snapshot is a point-in-time view of the CIB sections this tool reads.
type Snapshot struct {
	PropertySets []PropertySet `yaml:"property_sets,omitempty" json:"propertySets"`
	Nodes        []Node        `yaml:"nodes,omitempty" json:"nodes"`
	Constraints  Constraints   `yaml:"constraints,omitempty" json:"constraints"`
}

// DefaultPropertySet returns the first property set, the one in effect.
// When no set exists yet an empty bootstrap set is returned.
func (s *Snapshot) DefaultPropertySet() PropertySet {
	if len(s.PropertySets) > 0 {
		return s.PropertySets[0]
	}
	return PropertySet{ID: DefaultPropertySetID, Options: map[string]string{}}
}

// ConfiguredOptionNames returns the sorted names present in the property
// set in effect, the input of removal validation.
func (s *Snapshot) ConfiguredOptionNames() []string {
	set := s.DefaultPropertySet()
	names := make([]string, 0, len(set.Options))
	for name := range set.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileStore reads the snapshot from a local file, the equivalent of
// running against a saved CIB instead of the live cluster.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// Load parses the snapshot file.
func (f *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CIB snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse CIB snapshot %s: %w", f.Path, err)
	}

	return &snapshot, nil
}

// Save writes the snapshot back, used after a validated mutation.
func (f *FileStore) Save(snapshot *Snapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal CIB snapshot: %w", err)
	}

	if err := os.WriteFile(f.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CIB snapshot: %w", err)
	}

	return nil
}

// FetchAll implements Store. Failures surface as *LoadError so callers
// can inspect partial output and embedded reports.
func (f *FileStore) FetchAll(ctx context.Context, evaluateRules bool) (*Constraints, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Reason: "constraint fetch cancelled", Err: err}
	}

	snapshot, err := f.Load()
	if err != nil {
		return nil, &LoadError{Reason: "unable to load constraint configuration", Err: err}
	}

	constraints := snapshot.Constraints
	if evaluateRules {
		evaluateConstraintRules(&constraints, snapshot.Nodes)
	}
	return &constraints, nil
}
