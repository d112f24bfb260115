// Package reports defines the diagnostic vocabulary shared by all validators.
package reports

// Severity of a report item
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Code identifies one diagnostic kind
type Code string

const (
	CodeInvalidOptions                     Code = "INVALID_OPTIONS"
	CodeInvalidOptionValue                 Code = "INVALID_OPTION_VALUE"
	CodeAddRemoveItemsNotSpecified         Code = "ADD_REMOVE_ITEMS_NOT_SPECIFIED"
	CodeAddRemoveCannotRemoveItems         Code = "ADD_REMOVE_CANNOT_REMOVE_ITEMS_NOT_IN_THE_CONTAINER"
	CodeCannotDoActionForbiddenOptions     Code = "CANNOT_DO_ACTION_WITH_FORBIDDEN_OPTIONS"
	CodeWatchdogTimeoutCannotBeSet         Code = "STONITH_WATCHDOG_TIMEOUT_CANNOT_BE_SET"
	CodeWatchdogTimeoutCannotBeUnset       Code = "STONITH_WATCHDOG_TIMEOUT_CANNOT_BE_UNSET"
	CodeWatchdogTimeoutTooSmall            Code = "STONITH_WATCHDOG_TIMEOUT_TOO_SMALL"
	CodeDuplicateConstraintsExist          Code = "DUPLICATE_CONSTRAINTS_EXIST"
	CodeDuplicateConstraintsListDeprecated Code = "DUPLICATE_CONSTRAINTS_LIST"
)

// ForceCodeForce is the only override token currently in use. An item with
// an empty force code can never be downgraded.
const ForceCodeForce = "FORCE"

// Container and item kinds for the add/remove diagnostics
const (
	ContainerTypePropertySet = "property_set"
	ItemTypeProperty         = "property"
)

// OptionTypeClusterProperty tags property diagnostics for display
const OptionTypeClusterProperty = "cluster property"

// Payload carries the code-specific fields of an item. Only the fields
// relevant to the item's code are set.
type Payload struct {
	OptionNames            []string `json:"optionNames,omitempty"`
	Allowed                []string `json:"allowed,omitempty"`
	AllowedPatterns        []string `json:"allowedPatterns,omitempty"`
	OptionType             string   `json:"optionType,omitempty"`
	OptionName             string   `json:"optionName,omitempty"`
	OptionValue            string   `json:"optionValue,omitempty"`
	AllowedValues          string   `json:"allowedValues,omitempty"`
	AllowedValueList       []string `json:"allowedValueList,omitempty"`
	ContainerType          string   `json:"containerType,omitempty"`
	ItemType               string   `json:"itemType,omitempty"`
	ContainerID            string   `json:"containerId,omitempty"`
	ItemList               []string `json:"itemList,omitempty"`
	Action                 string   `json:"action,omitempty"`
	SpecifiedOptions       []string `json:"specifiedOptions,omitempty"`
	ForbiddenOptions       []string `json:"forbiddenOptions,omitempty"`
	Reason                 string   `json:"reason,omitempty"`
	ClusterWatchdogTimeout int      `json:"clusterWatchdogTimeout,omitempty"`
	EnteredTimeout         string   `json:"enteredTimeout,omitempty"`
	ConstraintIDs          []string `json:"constraintIds,omitempty"`
}

// Item is one immutable diagnostic. Validators always emit the unforced
// severity; ApplyForce is the only place severity changes.
type Item struct {
	Severity  Severity `json:"severity"`
	Code      Code     `json:"code"`
	ForceCode string   `json:"forceCode,omitempty"`
	Payload   Payload  `json:"payload"`
}

// Forceable reports whether an operator override can downgrade the item.
func (i Item) Forceable() bool {
	return i.ForceCode != ""
}

// ApplyForce rewrites Error severities to Warning for every forceable item
// when force is set. The force code is consumed by the rewrite. Items
// without a force code and pre-existing warnings are left untouched.
func ApplyForce(items []Item, force bool) []Item {
	if !force || len(items) == 0 {
		return items
	}
	out := make([]Item, len(items))
	for n, item := range items {
		if item.ForceCode != "" && item.Severity == SeverityError {
			item.Severity = SeverityWarning
			item.ForceCode = ""
		}
		out[n] = item
	}
	return out
}

// HasErrors reports whether any item is still blocking.
func HasErrors(items []Item) bool {
	for _, item := range items {
		if item.Severity == SeverityError {
			return true
		}
	}
	return false
}

// InvalidOptions builds the unknown-name diagnostic. Pass an empty
// forceCode for reserved names, which are blocked absolutely.
func InvalidOptions(optionNames, allowed []string, optionType, forceCode string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeInvalidOptions,
		ForceCode: forceCode,
		Payload: Payload{
			OptionNames:     optionNames,
			Allowed:         allowed,
			AllowedPatterns: []string{},
			OptionType:      optionType,
		},
	}
}

// InvalidOptionValue builds the malformed-value diagnostic. Exactly one of
// allowedValues (a free-text description) and allowedValueList (an
// enumeration, used by select) is set. Always forceable: the operator may
// be setting a value unknown to this version's schema on purpose.
func InvalidOptionValue(optionName, optionValue, allowedValues string, allowedValueList []string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeInvalidOptionValue,
		ForceCode: ForceCodeForce,
		Payload: Payload{
			OptionName:       optionName,
			OptionValue:      optionValue,
			AllowedValues:    allowedValues,
			AllowedValueList: allowedValueList,
		},
	}
}

// AddRemoveItemsNotSpecified reports an empty removal request.
func AddRemoveItemsNotSpecified(containerType, itemType, containerID string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeAddRemoveItemsNotSpecified,
		ForceCode: ForceCodeForce,
		Payload: Payload{
			ContainerType: containerType,
			ItemType:      itemType,
			ContainerID:   containerID,
		},
	}
}

// AddRemoveCannotRemoveItemsNotInContainer reports removal of names that
// are not present in the configured set.
func AddRemoveCannotRemoveItemsNotInContainer(containerType, itemType, containerID string, itemList []string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeAddRemoveCannotRemoveItems,
		ForceCode: ForceCodeForce,
		Payload: Payload{
			ContainerType: containerType,
			ItemType:      itemType,
			ContainerID:   containerID,
			ItemList:      itemList,
		},
	}
}

// CannotDoActionWithForbiddenOptions reports an attempt to touch reserved,
// machine-maintained options. Never forceable.
func CannotDoActionWithForbiddenOptions(action string, specified, forbidden []string, optionType string) Item {
	return Item{
		Severity: SeverityError,
		Code:     CodeCannotDoActionForbiddenOptions,
		Payload: Payload{
			Action:           action,
			SpecifiedOptions: specified,
			ForbiddenOptions: forbidden,
			OptionType:       optionType,
		},
	}
}

// WatchdogTimeoutCannotBeSet carries the watchdog-state reason.
func WatchdogTimeoutCannotBeSet(reason string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeWatchdogTimeoutCannotBeSet,
		ForceCode: ForceCodeForce,
		Payload:   Payload{Reason: reason},
	}
}

// WatchdogTimeoutCannotBeUnset carries the watchdog-state reason.
func WatchdogTimeoutCannotBeUnset(reason string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeWatchdogTimeoutCannotBeUnset,
		ForceCode: ForceCodeForce,
		Payload:   Payload{Reason: reason},
	}
}

// WatchdogTimeoutTooSmall carries both the daemon timeout and the value
// the operator entered.
func WatchdogTimeoutTooSmall(clusterTimeout int, entered string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeWatchdogTimeoutTooSmall,
		ForceCode: ForceCodeForce,
		Payload: Payload{
			ClusterWatchdogTimeout: clusterTimeout,
			EnteredTimeout:         entered,
		},
	}
}

// DuplicateConstraintsExist flags a new constraint duplicating existing ones.
func DuplicateConstraintsExist(constraintIDs []string) Item {
	return Item{
		Severity:  SeverityError,
		Code:      CodeDuplicateConstraintsExist,
		ForceCode: ForceCodeForce,
		Payload:   Payload{ConstraintIDs: constraintIDs},
	}
}
