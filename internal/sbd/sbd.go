// Package sbd models the watchdog (SBD) subsystem state consulted when
// the stonith-watchdog-timeout property changes.
package sbd

import (
	"github.com/pacectl/pacectl/internal/reports"
	"github.com/pacectl/pacectl/internal/schema"
)

// Querier is the live watchdog-subsystem query surface. LocalTimeout is
// only meaningful when the subsystem is enabled and the device list is
// empty.
type Querier interface {
	IsEnabled() bool
	LocalDeviceList() []string
	LocalTimeout() int
}

// State is one snapshot of the watchdog subsystem.
type State struct {
	Enabled      bool
	Devices      []string
	LocalTimeout int
}

// LazyState memoizes the querier so a validation call hits the external
// subsystem at most once, even when the invariant is evaluated from
// multiple code paths. Scoped to one call, never shared.
type LazyState struct {
	querier Querier
	fetched bool
	state   State
}

func NewLazyState(querier Querier) *LazyState {
	return &LazyState{querier: querier}
}

// Get fetches the state on first use and returns the memoized snapshot
// afterwards.
func (l *LazyState) Get() State {
	if !l.fetched {
		l.state = State{
			Enabled: l.querier.IsEnabled(),
			Devices: l.querier.LocalDeviceList(),
		}
		if l.state.Enabled && len(l.state.Devices) == 0 {
			l.state.LocalTimeout = l.querier.LocalTimeout()
		}
		l.fetched = true
	}
	return l.state
}

// ValidateTimeout cross-checks a target stonith-watchdog-timeout value
// against the watchdog state. An empty value means the property is being
// unset. A non-numeric value is treated as too small rather than as a
// type error; type validation runs separately.
func ValidateTimeout(state State, value string) []reports.Item {
	seconds, numeric := schema.ParseTimeSeconds(value)
	zero := value == "" || (numeric && seconds == 0)

	if !state.Enabled {
		if zero {
			return nil
		}
		return []reports.Item{
			reports.WatchdogTimeoutCannotBeSet(reports.ReasonSBDNotSetUp),
		}
	}

	if len(state.Devices) > 0 {
		if zero {
			return nil
		}
		return []reports.Item{
			reports.WatchdogTimeoutCannotBeSet(reports.ReasonSBDSetUpWithDevices),
		}
	}

	// Enabled without devices: the timeout is required and must cover the
	// local SBD watchdog timeout.
	if zero {
		return []reports.Item{
			reports.WatchdogTimeoutCannotBeUnset(reports.ReasonSBDSetUpWithoutDevices),
		}
	}
	if !numeric || seconds < state.LocalTimeout {
		return []reports.Item{
			reports.WatchdogTimeoutTooSmall(state.LocalTimeout, value),
		}
	}
	return nil
}
