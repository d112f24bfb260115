package schema

import "testing"

func TestParseBool(t *testing.T) {
	tests := []struct {
		raw   string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"yes", true, true},
		{"On", true, true},
		{"false", false, true},
		{"0", false, true},
		{"no", false, true},
		{"OFF", false, true},
		{"maybe", false, false},
		{"", false, false},
		{"10", false, false},
	}

	for _, tt := range tests {
		value, ok := ParseBool(tt.raw)
		if value != tt.value || ok != tt.ok {
			t.Errorf("ParseBool(%q) = %v, %v, want %v, %v", tt.raw, value, ok, tt.value, tt.ok)
		}
	}
}

func TestParseTimeSeconds(t *testing.T) {
	tests := []struct {
		raw     string
		seconds int
		ok      bool
	}{
		{"0", 0, true},
		{"10", 10, true},
		{"10s", 10, true},
		{"10sec", 10, true},
		{"2m", 120, true},
		{"2min", 120, true},
		{"1h", 3600, true},
		{"1hr", 3600, true},
		{"1500ms", 1, true},
		{"999msec", 0, true},
		{"2000000us", 2, true},
		{"", 0, false},
		{"-1", 0, false},
		{"10x", 0, false},
		{"s", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		seconds, ok := ParseTimeSeconds(tt.raw)
		if seconds != tt.seconds || ok != tt.ok {
			t.Errorf("ParseTimeSeconds(%q) = %d, %v, want %d, %v", tt.raw, seconds, ok, tt.seconds, tt.ok)
		}
	}
}
