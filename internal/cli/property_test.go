package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pacectl/pacectl/internal/cib"
)

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"maintenance-mode=true", "stonith-timeout=60s", "batch-limit="})
	if err != nil {
		t.Fatalf("parseAssignments() error: %v", err)
	}
	want := map[string]string{
		"maintenance-mode": "true",
		"stonith-timeout":  "60s",
		"batch-limit":      "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseAssignments() = %v, want %v", got, want)
	}
}

func TestParseAssignmentsRejectsBareNames(t *testing.T) {
	for _, arg := range []string{"maintenance-mode", "=true", ""} {
		if _, err := parseAssignments([]string{arg}); err == nil {
			t.Errorf("parseAssignments(%q) accepted", arg)
		}
	}
}

func TestApplyAssignments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cib.yaml")
	store := cib.NewFileStore(path)
	snapshot := &cib.Snapshot{
		PropertySets: []cib.PropertySet{{
			ID: cib.DefaultPropertySetID,
			Options: map[string]string{
				"maintenance-mode": "false",
				"stonith-timeout":  "60s",
			},
		}},
	}

	added, removed, updated, err := applyAssignments(store, snapshot, map[string]string{
		"maintenance-mode": "true",
		"stonith-timeout":  "",
		"no-quorum-policy": "freeze",
	})
	if err != nil {
		t.Fatalf("applyAssignments() error: %v", err)
	}
	if added != 1 || removed != 1 || updated != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", added, removed, updated)
	}

	// Saved snapshot reflects the merge.
	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := map[string]string{
		"maintenance-mode": "true",
		"no-quorum-policy": "freeze",
	}
	if !reflect.DeepEqual(reloaded.DefaultPropertySet().Options, want) {
		t.Errorf("saved options = %v, want %v", reloaded.DefaultPropertySet().Options, want)
	}
}

func TestApplyAssignmentsEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cib.yaml")
	store := cib.NewFileStore(path)

	added, removed, updated, err := applyAssignments(store, &cib.Snapshot{}, map[string]string{
		"maintenance-mode": "true",
	})
	if err != nil {
		t.Fatalf("applyAssignments() error: %v", err)
	}
	if added != 1 || removed != 0 || updated != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/0/0", added, removed, updated)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	set := reloaded.DefaultPropertySet()
	if set.ID != cib.DefaultPropertySetID {
		t.Errorf("set id = %q, want %q", set.ID, cib.DefaultPropertySetID)
	}
	if set.Options["maintenance-mode"] != "true" {
		t.Errorf("options = %v", set.Options)
	}
}

func TestLoadProposedProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposed.yaml")
	content := "maintenance-mode: \"true\"\nno-quorum-policy: freeze\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write proposed file: %v", err)
	}

	got, err := loadProposedProperties(path)
	if err != nil {
		t.Fatalf("loadProposedProperties() error: %v", err)
	}
	want := map[string]string{
		"maintenance-mode": "true",
		"no-quorum-policy": "freeze",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loadProposedProperties() = %v, want %v", got, want)
	}
}

func TestLoadProposedPropertiesMissingFile(t *testing.T) {
	if _, err := loadProposedProperties(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSnapshotMissingFileStartsEmpty(t *testing.T) {
	store := cib.NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"))
	snapshot, err := loadSnapshot(store)
	if err != nil {
		t.Fatalf("loadSnapshot() error: %v", err)
	}
	if len(snapshot.PropertySets) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snapshot)
	}
}
