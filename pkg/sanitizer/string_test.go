package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"basic trim", "  North-1  ", "North-1"},
		{"multiple spaces", "Quay    East", "Quay East"},
		{"tabs and newlines", "Quay\t\nEast", "Quay East"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"non-ascii preserved", " Kai Süd ", "Kai Süd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCargoCategory_KeepsCase(t *testing.T) {
	if got := NormalizeCargoCategory("  Liquid   Bulk "); got != "Liquid Bulk" {
		t.Errorf("NormalizeCargoCategory() = %q, want %q", got, "Liquid Bulk")
	}
}

func TestNormalizeVesselNumber(t *testing.T) {
	if got := NormalizeVesselNumber(" IMO9321483\n"); got != "IMO9321483" {
		t.Errorf("NormalizeVesselNumber() = %q", got)
	}
}
