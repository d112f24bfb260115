package validate

import (
	"reflect"
	"testing"

	"github.com/pacectl/pacectl/internal/reports"
	"github.com/pacectl/pacectl/internal/schema"
)

func TestValidateValueAccepts(t *testing.T) {
	tests := []struct {
		name string
		def  schema.ParameterDefinition
		raw  string
	}{
		{"boolean true", schema.ParameterDefinition{Type: schema.TypeBoolean}, "true"},
		{"boolean uppercase", schema.ParameterDefinition{Type: schema.TypeBoolean}, "OFF"},
		{"boolean numeric", schema.ParameterDefinition{Type: schema.TypeBoolean}, "1"},
		{"integer plain", schema.ParameterDefinition{Type: schema.TypeInteger}, "42"},
		{"integer negative", schema.ParameterDefinition{Type: schema.TypeInteger}, "-7"},
		{"integer infinity", schema.ParameterDefinition{Type: schema.TypeInteger}, "INFINITY"},
		{"integer negative infinity", schema.ParameterDefinition{Type: schema.TypeInteger}, "-INFINITY"},
		{"percentage zero", schema.ParameterDefinition{Type: schema.TypePercentage}, "0%"},
		{"percentage large", schema.ParameterDefinition{Type: schema.TypePercentage}, "200%"},
		{"time bare seconds", schema.ParameterDefinition{Type: schema.TypeTime}, "1"},
		{"time with suffix", schema.ParameterDefinition{Type: schema.TypeTime}, "5min"},
		{"time hours", schema.ParameterDefinition{Type: schema.TypeTime}, "4h"},
		{"select member", schema.ParameterDefinition{Type: schema.TypeSelect, EnumValues: []string{"s1", "s2"}}, "s2"},
		{"string anything", schema.ParameterDefinition{Type: schema.TypeString}, "free text"},
		{"unrecognized type passes", schema.ParameterDefinition{Type: "epoch_time"}, "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if item := ValidateValue("param", tt.raw, tt.def); item != nil {
				t.Errorf("ValidateValue(%q) = %+v, want nil", tt.raw, item)
			}
		})
	}
}

func TestValidateValueRejects(t *testing.T) {
	tests := []struct {
		name        string
		def         schema.ParameterDefinition
		raw         string
		wantAllowed string
		wantList    []string
	}{
		{"boolean word", schema.ParameterDefinition{Type: schema.TypeBoolean}, "Falsch", "a boolean value", nil},
		{"integer float", schema.ParameterDefinition{Type: schema.TypeInteger}, "3.14", "an integer or INFINITY or -INFINITY", nil},
		{"integer empty", schema.ParameterDefinition{Type: schema.TypeInteger}, "", "an integer or INFINITY or -INFINITY", nil},
		{"integer bare sign", schema.ParameterDefinition{Type: schema.TypeInteger}, "-", "an integer or INFINITY or -INFINITY", nil},
		{"percentage missing sign", schema.ParameterDefinition{Type: schema.TypePercentage}, "20", "a non-negative integer followed by '%' (e.g. 0%, 50%, 200%, ...)", nil},
		{"percentage negative", schema.ParameterDefinition{Type: schema.TypePercentage}, "-5%", "a non-negative integer followed by '%' (e.g. 0%, 50%, 200%, ...)", nil},
		{"time bad suffix", schema.ParameterDefinition{Type: schema.TypeTime}, "10x", "time interval (e.g. 1, 2s, 3m, 4h, ...)", nil},
		{"time negative", schema.ParameterDefinition{Type: schema.TypeTime}, "-1", "time interval (e.g. 1, 2s, 3m, 4h, ...)", nil},
		{"select outsider", schema.ParameterDefinition{Type: schema.TypeSelect, EnumValues: []string{"s1", "s2", "s3"}}, "not-in-enum-values", "", []string{"s1", "s2", "s3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := ValidateValue("param", tt.raw, tt.def)
			if item == nil {
				t.Fatalf("ValidateValue(%q) = nil, want a report", tt.raw)
			}
			want := reports.InvalidOptionValue("param", tt.raw, tt.wantAllowed, tt.wantList)
			if !reflect.DeepEqual(*item, want) {
				t.Errorf("ValidateValue(%q) = %+v, want %+v", tt.raw, *item, want)
			}
			if !item.Forceable() {
				t.Errorf("value failure for %q is not forceable", tt.raw)
			}
		})
	}
}
