package validate

import (
	"sort"

	"github.com/pacectl/pacectl/internal/reports"
	"github.com/pacectl/pacectl/internal/sbd"
	"github.com/pacectl/pacectl/internal/schema"
)

// ForbiddenOptions are exclusively machine-maintained cluster properties.
// Setting or removing them is blocked absolutely, force or not.
var ForbiddenOptions = []string{
	"cluster-infrastructure",
	"cluster-name",
	"dc-version",
	"have-watchdog",
}

// WatchdogTimeoutProperty is cross-checked against live SBD state.
const WatchdogTimeoutProperty = "stonith-watchdog-timeout"

func isForbidden(name string) bool {
	for _, forbidden := range ForbiddenOptions {
		if name == forbidden {
			return true
		}
	}
	return false
}

// Set validates a proposed assignment of cluster properties. The watchdog
// querier is consulted at most once, and only when stonith-watchdog-timeout
// is among the proposed names.
func Set(
	sources []schema.AgentMetadata,
	propertySetID string,
	querier sbd.Querier,
	proposed map[string]string,
	force bool,
) []reports.Item {
	_ = propertySetID // reserved names are global, not per set

	merged := schema.Merge(sources)
	allowed := merged.AllowedNames()
	watchdog := sbd.NewLazyState(querier)

	names := make([]string, 0, len(proposed))
	for name := range proposed {
		names = append(names, name)
	}
	sort.Strings(names)

	var known, unknownOther, unknownForbidden []string
	for _, name := range names {
		_, inSchema := merged[name]
		switch {
		case isForbidden(name):
			// Reserved names are blocked regardless of schema membership.
			unknownForbidden = append(unknownForbidden, name)
		case inSchema:
			known = append(known, name)
		default:
			unknownOther = append(unknownOther, name)
		}
	}

	var items []reports.Item
	if len(unknownOther) > 0 {
		items = append(items, reports.InvalidOptions(
			unknownOther, allowed, reports.OptionTypeClusterProperty, reports.ForceCodeForce,
		))
	}
	if len(unknownForbidden) > 0 {
		items = append(items, reports.InvalidOptions(
			unknownForbidden, allowed, reports.OptionTypeClusterProperty, "",
		))
	}

	for _, name := range known {
		if item := ValidateValue(name, proposed[name], merged[name]); item != nil {
			items = append(items, *item)
		}
	}

	if value, ok := proposed[WatchdogTimeoutProperty]; ok {
		items = append(items, sbd.ValidateTimeout(watchdog.Get(), value)...)
	}

	return reports.ApplyForce(items, force)
}

// Remove validates a proposed removal of cluster properties from the
// configured set.
func Remove(
	configured []string,
	propertySetID string,
	querier sbd.Querier,
	names []string,
	force bool,
) []reports.Item {
	if len(names) == 0 {
		items := []reports.Item{
			reports.AddRemoveItemsNotSpecified(
				reports.ContainerTypePropertySet, reports.ItemTypeProperty, propertySetID,
			),
		}
		return reports.ApplyForce(items, force)
	}

	configuredSet := make(map[string]struct{}, len(configured))
	for _, name := range configured {
		configuredSet[name] = struct{}{}
	}

	var items []reports.Item

	var notConfigured []string
	for _, name := range names {
		if _, ok := configuredSet[name]; !ok {
			notConfigured = append(notConfigured, name)
		}
	}
	if len(notConfigured) > 0 {
		items = append(items, reports.AddRemoveCannotRemoveItemsNotInContainer(
			reports.ContainerTypePropertySet, reports.ItemTypeProperty, propertySetID, notConfigured,
		))
	}

	// Independent of the not-configured check: a forbidden name that also
	// happens to be absent still produces both reports.
	var forbiddenRequested []string
	for _, name := range names {
		if isForbidden(name) {
			forbiddenRequested = append(forbiddenRequested, name)
		}
	}
	if len(forbiddenRequested) > 0 {
		items = append(items, reports.CannotDoActionWithForbiddenOptions(
			"remove", forbiddenRequested, ForbiddenOptions, reports.OptionTypeClusterProperty,
		))
	}

	watchdogRequested := false
	for _, name := range names {
		if name == WatchdogTimeoutProperty {
			watchdogRequested = true
			break
		}
	}
	if _, configured := configuredSet[WatchdogTimeoutProperty]; watchdogRequested && configured {
		watchdog := sbd.NewLazyState(querier)
		items = append(items, sbd.ValidateTimeout(watchdog.Get(), "")...)
	}

	return reports.ApplyForce(items, force)
}
