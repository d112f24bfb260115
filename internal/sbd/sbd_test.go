package sbd

import (
	"reflect"
	"testing"

	"github.com/pacectl/pacectl/internal/reports"
)

type fakeQuerier struct {
	enabled      bool
	devices      []string
	timeout      int
	enabledCalls int
	timeoutCalls int
}

func (f *fakeQuerier) IsEnabled() bool {
	f.enabledCalls++
	return f.enabled
}

func (f *fakeQuerier) LocalDeviceList() []string {
	return f.devices
}

func (f *fakeQuerier) LocalTimeout() int {
	f.timeoutCalls++
	return f.timeout
}

func TestLazyStateFetchesOnce(t *testing.T) {
	querier := &fakeQuerier{enabled: true, timeout: 10}
	lazy := NewLazyState(querier)

	first := lazy.Get()
	second := lazy.Get()

	if querier.enabledCalls != 1 {
		t.Errorf("IsEnabled called %d times, want 1", querier.enabledCalls)
	}
	if querier.timeoutCalls != 1 {
		t.Errorf("LocalTimeout called %d times, want 1", querier.timeoutCalls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("memoized state differs: %+v vs %+v", first, second)
	}
	if first.LocalTimeout != 10 {
		t.Errorf("LocalTimeout = %d, want 10", first.LocalTimeout)
	}
}

func TestLazyStateSkipsTimeoutWithDevices(t *testing.T) {
	querier := &fakeQuerier{enabled: true, devices: []string{"/dev/sdx"}}
	NewLazyState(querier).Get()

	if querier.timeoutCalls != 0 {
		t.Errorf("LocalTimeout called %d times with devices present, want 0", querier.timeoutCalls)
	}
}

func TestValidateTimeoutTable(t *testing.T) {
	disabled := State{}
	noDevices := State{Enabled: true, LocalTimeout: 10}
	withDevices := State{Enabled: true, Devices: []string{"/dev/sdx"}}

	tests := []struct {
		name  string
		state State
		value string
		want  []reports.Item
	}{
		{"disabled zero", disabled, "0", nil},
		{"disabled unset", disabled, "", nil},
		{
			"disabled nonzero", disabled, "5",
			[]reports.Item{reports.WatchdogTimeoutCannotBeSet(reports.ReasonSBDNotSetUp)},
		},
		{
			"no devices zero", noDevices, "0",
			[]reports.Item{reports.WatchdogTimeoutCannotBeUnset(reports.ReasonSBDSetUpWithoutDevices)},
		},
		{
			"no devices unset", noDevices, "",
			[]reports.Item{reports.WatchdogTimeoutCannotBeUnset(reports.ReasonSBDSetUpWithoutDevices)},
		},
		{
			"no devices too small", noDevices, "9",
			[]reports.Item{reports.WatchdogTimeoutTooSmall(10, "9")},
		},
		{"no devices at threshold", noDevices, "10", nil},
		{"no devices above threshold", noDevices, "15", nil},
		{"no devices with suffix", noDevices, "1min", nil},
		{
			"no devices non-numeric treated as too small", noDevices, "invalid",
			[]reports.Item{reports.WatchdogTimeoutTooSmall(10, "invalid")},
		},
		{"with devices zero", withDevices, "0", nil},
		{"with devices unset", withDevices, "", nil},
		{
			"with devices nonzero", withDevices, "15",
			[]reports.Item{reports.WatchdogTimeoutCannotBeSet(reports.ReasonSBDSetUpWithDevices)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateTimeout(tt.state, tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateTimeout(%+v, %q) = %+v, want %+v", tt.state, tt.value, got, tt.want)
			}
		})
	}
}
