package codegen

import "testing"

func TestIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "X"},
		{"ipv4", "Ipv4"},
		{"IPv4", "IPv4"},
		{"_hidden", "X_hidden"},
		{"date_time", "Date_time"},
	}

	for _, tt := range tests {
		got := Identifier(tt.input)
		if got != tt.want {
			t.Errorf("Identifier(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPatternConst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"octet", "OctetPattern"},
		{"Octet", "OctetPattern"},
		{"_x", "X_xPattern"},
	}

	for _, tt := range tests {
		got := PatternConst(tt.input)
		if got != tt.want {
			t.Errorf("PatternConst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"hello", "Hello"},
		{"Hello", "Hello"},
		{"x", "X"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
