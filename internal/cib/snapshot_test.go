package cib

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const fixtureSnapshot = `
property_sets:
  - id: first
    options:
      maintenance-mode: "false"
      stonith-watchdog-timeout: "10"
  - id: second
    options:
      have-watchdog: "false"
nodes:
  - name: node1
    attributes:
      region: eu
  - name: node2
    attributes:
      region: us
constraints:
  location:
    - id: loc-web
      resource: web
      node: node1
      score: INFINITY
    - id: loc-db
      resource: db
      node: node2
      score: "200"
      rule: node["region"] == "eu"
    - id: loc-cache
      resource: cache
      node: node1
      score: "50"
      rule: node["region"] == "ap"
  colocation:
    - id: col-web-db
      resource: web
      with_resource: db
      score: INFINITY
  order:
    - id: ord-db-web
      first: db
      then: web
  ticket:
    - id: tick-web
      ticket: web-ticket
      resource: web
      loss_policy: stop
`

func writeSnapshot(t *testing.T, content string) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cib.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return NewFileStore(path)
}

func TestLoadSnapshot(t *testing.T) {
	store := writeSnapshot(t, fixtureSnapshot)

	snapshot, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	set := snapshot.DefaultPropertySet()
	if set.ID != "first" {
		t.Errorf("default property set = %q, want %q", set.ID, "first")
	}

	want := []string{"maintenance-mode", "stonith-watchdog-timeout"}
	if got := snapshot.ConfiguredOptionNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ConfiguredOptionNames() = %v, want %v", got, want)
	}
}

func TestDefaultPropertySetBootstrap(t *testing.T) {
	snapshot := &Snapshot{}
	set := snapshot.DefaultPropertySet()
	if set.ID != DefaultPropertySetID {
		t.Errorf("bootstrap set id = %q, want %q", set.ID, DefaultPropertySetID)
	}
	if len(set.Options) != 0 {
		t.Errorf("bootstrap set options = %v, want empty", set.Options)
	}
}

func TestFetchAllWithoutRules(t *testing.T) {
	store := writeSnapshot(t, fixtureSnapshot)

	constraints, err := store.FetchAll(context.Background(), false)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}

	if len(constraints.Location) != 3 {
		t.Fatalf("location count = %d, want 3", len(constraints.Location))
	}
	for _, c := range constraints.Location {
		if c.RuleInEffect != "" {
			t.Errorf("constraint %s has RuleInEffect %q without evaluation", c.ID, c.RuleInEffect)
		}
	}
}

func TestFetchAllEvaluatesRules(t *testing.T) {
	store := writeSnapshot(t, fixtureSnapshot)

	constraints, err := store.FetchAll(context.Background(), true)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}

	byID := map[string]LocationConstraint{}
	for _, c := range constraints.Location {
		byID[c.ID] = c
	}

	if got := byID["loc-web"].RuleInEffect; got != "" {
		t.Errorf("rule-less constraint RuleInEffect = %q, want empty", got)
	}
	if got := byID["loc-db"].RuleInEffect; got != RuleInEffect {
		t.Errorf("loc-db RuleInEffect = %q, want %q", got, RuleInEffect)
	}
	if got := byID["loc-cache"].RuleInEffect; got != RuleNotInEffect {
		t.Errorf("loc-cache RuleInEffect = %q, want %q", got, RuleNotInEffect)
	}
}

func TestFetchAllBadRuleDegrades(t *testing.T) {
	store := writeSnapshot(t, `
constraints:
  location:
    - id: loc-bad
      resource: web
      node: node1
      rule: this is not CEL ((
`)

	constraints, err := store.FetchAll(context.Background(), true)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if got := constraints.Location[0].RuleInEffect; got != RuleUnknown {
		t.Errorf("RuleInEffect = %q, want %q", got, RuleUnknown)
	}
}

func TestFetchAllMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := store.FetchAll(context.Background(), false)
	if err == nil {
		t.Fatal("FetchAll() = nil error for a missing file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
	if loadErr.Reason == "" {
		t.Error("LoadError has empty reason")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	store := writeSnapshot(t, fixtureSnapshot)
	snapshot, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	set := snapshot.DefaultPropertySet()
	set.Options["maintenance-mode"] = "true"
	if err := store.Save(snapshot); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.DefaultPropertySet().Options["maintenance-mode"]; got != "true" {
		t.Errorf("maintenance-mode after round trip = %q, want %q", got, "true")
	}
}
