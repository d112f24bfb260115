package sbd

import (
	"os"
	"strconv"
	"strings"
)

// DefaultSysconfigPath is where the sbd service configuration usually
// lives on cluster nodes.
const DefaultSysconfigPath = "/etc/sysconfig/sbd"

// defaultWatchdogTimeout matches the sbd built-in when
// SBD_WATCHDOG_TIMEOUT is not configured.
const defaultWatchdogTimeout = 5

// SysconfigQuerier reads watchdog subsystem state from an sbd sysconfig
// file (key=value lines). The subsystem counts as enabled when the file
// exists and is readable.
type SysconfigQuerier struct {
	Path string

	loaded  bool
	enabled bool
	values  map[string]string
}

// NewSysconfigQuerier for the given path; empty path uses the default.
func NewSysconfigQuerier(path string) *SysconfigQuerier {
	if path == "" {
		path = DefaultSysconfigPath
	}
	return &SysconfigQuerier{Path: path}
}

func (q *SysconfigQuerier) load() {
	if q.loaded {
		return
	}
	q.loaded = true
	q.values = map[string]string{}

	data, err := os.ReadFile(q.Path)
	if err != nil {
		return
	}
	q.enabled = true

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		q.values[strings.TrimSpace(key)] = value
	}
}

// IsEnabled reports whether the sbd configuration is present.
func (q *SysconfigQuerier) IsEnabled() bool {
	q.load()
	return q.enabled
}

// LocalDeviceList returns the shared block devices from SBD_DEVICE
// (semicolon separated).
func (q *SysconfigQuerier) LocalDeviceList() []string {
	q.load()
	raw := q.values["SBD_DEVICE"]
	if raw == "" {
		return nil
	}
	var devices []string
	for _, device := range strings.Split(raw, ";") {
		device = strings.TrimSpace(device)
		if device != "" {
			devices = append(devices, device)
		}
	}
	return devices
}

// LocalTimeout returns SBD_WATCHDOG_TIMEOUT in seconds, or the sbd
// built-in default when unset or malformed.
func (q *SysconfigQuerier) LocalTimeout() int {
	q.load()
	raw := q.values["SBD_WATCHDOG_TIMEOUT"]
	if raw == "" {
		return defaultWatchdogTimeout
	}
	timeout, err := strconv.Atoi(raw)
	if err != nil || timeout < 0 {
		return defaultWatchdogTimeout
	}
	return timeout
}
