package differ

import (
	"reflect"
	"sort"
	"testing"
)

func TestComparePropertiesNoChanges(t *testing.T) {
	props := map[string]string{"maintenance-mode": "false"}

	result, err := CompareProperties(props, props)
	if err != nil {
		t.Fatalf("CompareProperties() error: %v", err)
	}
	if result.HasChanges {
		t.Errorf("HasChanges = true for identical maps")
	}
	if len(result.Changes) != 0 {
		t.Errorf("Changes = %+v, want none", result.Changes)
	}
}

func TestComparePropertiesDetectsAll(t *testing.T) {
	current := map[string]string{
		"maintenance-mode": "false",
		"stonith-timeout":  "60s",
		"batch-limit":      "0",
	}
	proposed := map[string]string{
		"maintenance-mode": "true",
		"batch-limit":      "0",
		"no-quorum-policy": "freeze",
	}

	result, err := CompareProperties(current, proposed)
	if err != nil {
		t.Fatalf("CompareProperties() error: %v", err)
	}
	if !result.HasChanges {
		t.Fatal("HasChanges = false")
	}

	byName := map[string]PropertyChange{}
	for _, change := range result.Changes {
		byName[change.Name] = change
	}
	if len(byName) != 3 {
		t.Fatalf("change count = %d, want 3: %+v", len(byName), result.Changes)
	}

	if change := byName["maintenance-mode"]; change.Type != ChangeUpdated || change.OldValue != "false" || change.NewValue != "true" {
		t.Errorf("maintenance-mode change = %+v", change)
	}
	if change := byName["stonith-timeout"]; change.Type != ChangeRemoved || change.OldValue != "60s" {
		t.Errorf("stonith-timeout change = %+v", change)
	}
	if change := byName["no-quorum-policy"]; change.Type != ChangeAdded || change.NewValue != "freeze" {
		t.Errorf("no-quorum-policy change = %+v", change)
	}
}

func TestComparePropertiesNilMaps(t *testing.T) {
	result, err := CompareProperties(nil, map[string]string{"a": "1"})
	if err != nil {
		t.Fatalf("CompareProperties() error: %v", err)
	}
	if !result.HasChanges || len(result.Changes) != 1 {
		t.Fatalf("result = %+v, want one added change", result)
	}
	if result.Changes[0].Type != ChangeAdded {
		t.Errorf("change type = %s, want %s", result.Changes[0].Type, ChangeAdded)
	}
}

func TestTranslate(t *testing.T) {
	changes := []PropertyChange{
		{Name: "no-quorum-policy", Type: ChangeAdded, NewValue: "freeze"},
		{Name: "stonith-timeout", Type: ChangeRemoved, OldValue: "60s"},
		{Name: "maintenance-mode", Type: ChangeUpdated, OldValue: "false", NewValue: "true"},
	}

	got := Translate(changes)
	want := []string{
		"property 'no-quorum-policy' added with value 'freeze'",
		"property 'stonith-timeout' removed (was '60s')",
		"property 'maintenance-mode' changed from 'false' to 'true'",
	}
	sort.Strings(got)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate() = %v, want %v", got, want)
	}
}

func TestTranslateEmpty(t *testing.T) {
	if got := Translate(nil); got != nil {
		t.Errorf("Translate(nil) = %v, want nil", got)
	}
}
