package schema

import (
	"strconv"
	"strings"
)

// ParseBool interprets the cluster-wide boolean grammar. The second
// return value reports whether the input was a valid boolean at all.
func ParseBool(raw string) (value bool, ok bool) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// timeSuffixes maps duration-unit suffixes to the multiplier (or divisor,
// when negative) applied to reach seconds. A bare number means seconds.
var timeSuffixes = map[string]int{
	"":     1,
	"s":    1,
	"sec":  1,
	"m":    60,
	"min":  60,
	"h":    3600,
	"hr":   3600,
	"ms":   -1000,
	"msec": -1000,
	"us":   -1000000,
	"usec": -1000000,
}

// ParseTimeSeconds interprets a time interval: a non-negative integer
// optionally followed by a duration-unit suffix. Returns the value in
// whole seconds; sub-second units truncate.
func ParseTimeSeconds(raw string) (seconds int, ok bool) {
	digits := raw
	suffix := ""
	for n, r := range raw {
		if r < '0' || r > '9' {
			digits = raw[:n]
			suffix = raw[n:]
			break
		}
	}
	if digits == "" {
		return 0, false
	}

	factor, known := timeSuffixes[suffix]
	if !known {
		return 0, false
	}

	number, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}

	if factor < 0 {
		return number / -factor, true
	}
	return number * factor, true
}
