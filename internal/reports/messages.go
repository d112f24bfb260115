package reports

import (
	"fmt"
	"sort"
	"strings"
)

// Text renders the operator-facing message for an item.
func (i Item) Text() string {
	p := i.Payload
	switch i.Code {
	case CodeInvalidOptions:
		return fmt.Sprintf(
			"invalid %s %s %s, allowed options are: %s",
			p.OptionType,
			pluralOption(len(p.OptionNames)),
			FormatList(p.OptionNames),
			FormatList(p.Allowed),
		)
	case CodeInvalidOptionValue:
		allowed := p.AllowedValues
		if len(p.AllowedValueList) > 0 {
			allowed = FormatList(p.AllowedValueList)
		}
		return fmt.Sprintf(
			"'%s' is not a valid %s value, use %s",
			p.OptionValue, p.OptionName, allowed,
		)
	case CodeAddRemoveItemsNotSpecified:
		return fmt.Sprintf(
			"Cannot modify %s '%s', no %s specified",
			p.ContainerType, p.ContainerID, p.ItemType,
		)
	case CodeAddRemoveCannotRemoveItems:
		return fmt.Sprintf(
			"Unable to remove %s %s from %s '%s', they are not present",
			pluralItem(p.ItemType, len(p.ItemList)),
			FormatList(p.ItemList),
			p.ContainerType, p.ContainerID,
		)
	case CodeCannotDoActionForbiddenOptions:
		return fmt.Sprintf(
			"Cannot %s specific %s options: %s, those options are maintained by the cluster and protected: %s",
			p.Action, p.OptionType,
			FormatList(p.SpecifiedOptions),
			FormatList(p.ForbiddenOptions),
		)
	case CodeWatchdogTimeoutCannotBeSet:
		return fmt.Sprintf(
			"stonith-watchdog-timeout cannot be set because %s", reasonText(p.Reason),
		)
	case CodeWatchdogTimeoutCannotBeUnset:
		return fmt.Sprintf(
			"stonith-watchdog-timeout cannot be unset or set to 0 because %s",
			reasonText(p.Reason),
		)
	case CodeWatchdogTimeoutTooSmall:
		return fmt.Sprintf(
			"The stonith-watchdog-timeout must be greater than SBD watchdog timeout '%d', entered '%s'",
			p.ClusterWatchdogTimeout, p.EnteredTimeout,
		)
	case CodeDuplicateConstraintsExist:
		return fmt.Sprintf(
			"duplicate constraint already exists: %s", FormatList(p.ConstraintIDs),
		)
	default:
		return string(i.Code)
	}
}

// Watchdog-state reason tokens
const (
	ReasonSBDNotSetUp            = "sbd_not_set_up"
	ReasonSBDSetUpWithoutDevices = "sbd_set_up_without_devices"
	ReasonSBDSetUpWithDevices    = "sbd_set_up_with_devices"
)

func reasonText(reason string) string {
	switch reason {
	case ReasonSBDNotSetUp:
		return "SBD is disabled"
	case ReasonSBDSetUpWithoutDevices:
		return "SBD is enabled without devices"
	case ReasonSBDSetUpWithDevices:
		return "SBD is enabled with devices"
	default:
		return reason
	}
}

// FormatList renders names sorted and quoted, matching the CLI output
// format everywhere lists of names appear.
func FormatList(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	for n, name := range sorted {
		sorted[n] = "'" + name + "'"
	}
	return strings.Join(sorted, ", ")
}

func pluralOption(count int) string {
	if count == 1 {
		return "option"
	}
	return "options"
}

func pluralItem(itemType string, count int) string {
	if count == 1 {
		return itemType
	}
	return itemType + "s"
}
