package main

import (
	"path/filepath"
	"testing"
)

func TestArrayFlagsString(t *testing.T) {
	tests := []struct {
		name     string
		flags    arrayFlags
		expected string
	}{
		{
			name:     "empty",
			flags:    arrayFlags{},
			expected: "",
		},
		{
			name:     "single",
			flags:    arrayFlags{"IPv4"},
			expected: "IPv4",
		},
		{
			name:     "multiple",
			flags:    arrayFlags{"IPv4", "Octet", "Date"},
			expected: "IPv4, Octet, Date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.flags.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestArrayFlagsSet(t *testing.T) {
	var flags arrayFlags

	// Test adding multiple values
	if err := flags.Set("IPv4"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 1 || flags[0] != "IPv4" {
		t.Errorf("Set() = %v, want [\"IPv4\"]", flags)
	}

	if err := flags.Set("Octet"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 2 || flags[1] != "Octet" {
		t.Errorf("Set() = %v, want [\"IPv4\", \"Octet\"]", flags)
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ids.rx", "ids.go"},
		{filepath.Join("pkg", "ids.rx"), filepath.Join("pkg", "ids.go")},
		{"noext", "noext.go"},
	}

	for _, tt := range tests {
		if got := defaultOutput(tt.input); got != tt.want {
			t.Errorf("defaultOutput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultPackage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "net-ids")
	if got := defaultPackage(filepath.Join(dir, "ids.go")); got != "net_ids" {
		t.Errorf("defaultPackage() = %q, want %q", got, "net_ids")
	}
}
