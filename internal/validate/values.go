// Package validate implements pre-commit validation of proposed cluster
// property changes. Validators return report items as data, never errors.
package validate

import (
	"strconv"
	"strings"

	"github.com/pacectl/pacectl/internal/reports"
	"github.com/pacectl/pacectl/internal/schema"
)

// Allowed-values descriptions surfaced in INVALID_OPTION_VALUE payloads
const (
	allowedBoolean    = "a boolean value"
	allowedInteger    = "an integer or INFINITY or -INFINITY"
	allowedPercentage = "a non-negative integer followed by '%' (e.g. 0%, 50%, 200%, ...)"
	allowedTime       = "time interval (e.g. 1, 2s, 3m, 4h, ...)"
)

// ValidateValue checks one raw value against its schema definition.
// Returns nil when the value is acceptable. Any failure is forceable: the
// operator may be setting a value unknown to this version's schema.
func ValidateValue(name, raw string, def schema.ParameterDefinition) *reports.Item {
	switch def.Type {
	case schema.TypeBoolean:
		if _, ok := schema.ParseBool(raw); !ok {
			return invalidValue(name, raw, allowedBoolean, nil)
		}
	case schema.TypeInteger:
		if !isInteger(raw) {
			return invalidValue(name, raw, allowedInteger, nil)
		}
	case schema.TypePercentage:
		if !isPercentage(raw) {
			return invalidValue(name, raw, allowedPercentage, nil)
		}
	case schema.TypeTime:
		if _, ok := schema.ParseTimeSeconds(raw); !ok {
			return invalidValue(name, raw, allowedTime, nil)
		}
	case schema.TypeSelect:
		for _, allowed := range def.EnumValues {
			if raw == allowed {
				return nil
			}
		}
		return invalidValue(name, raw, "", def.EnumValues)
	}
	// Unrecognized and string types carry free-form values.
	return nil
}

func invalidValue(name, raw, allowed string, allowedList []string) *reports.Item {
	item := reports.InvalidOptionValue(name, raw, allowed, allowedList)
	return &item
}

func isInteger(raw string) bool {
	switch raw {
	case "INFINITY", "+INFINITY", "-INFINITY":
		return true
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(raw, "+"), "-")
	if trimmed == "" {
		return false
	}
	_, err := strconv.Atoi(raw)
	return err == nil
}

func isPercentage(raw string) bool {
	if !strings.HasSuffix(raw, "%") {
		return false
	}
	digits := strings.TrimSuffix(raw, "%")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
