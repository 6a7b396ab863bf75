package medicaid

import "testing"

func TestNormalizeNDCEquivalence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0000-2143-38", "0000214338"},
		{"0000214338", "0000214338"},
		{" 00002-1433-80 ", "00002143380"},
		{"123 456", "123456"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeNDC(tt.in); got != tt.want {
			t.Errorf("normalizeNDC(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Separator styles must collapse to the same key so matches never
	// depend on source formatting.
	if normalizeNDC("0000-2143-38") != normalizeNDC("0000214338") {
		t.Error("dashed and plain NDCs must normalize identically")
	}
}

func TestParseFloatNeverReturnsZeroOnFailure(t *testing.T) {
	for _, bad := range []string{"", "garbage", "1.2.3", "N/A"} {
		if got := parseFloat(bad); got != nil {
			t.Errorf("parseFloat(%q) = %v, want nil", bad, *got)
		}
	}

	if got := parseFloat("0"); got == nil || *got != 0 {
		t.Error("a real zero must parse as zero, not nil")
	}
	if got := parseFloat("1,497,925"); got == nil || *got != 1497925 {
		t.Errorf("comma-grouped parse = %v", got)
	}
	if got := parseFloat(" 12.50 "); got == nil || *got != 12.5 {
		t.Errorf("trimmed parse = %v", got)
	}
}

func TestYes(t *testing.T) {
	for _, v := range []string{"Y", "y", "Yes", "YES", " yes "} {
		if !yes(v) {
			t.Errorf("yes(%q) = false", v)
		}
	}
	for _, v := range []string{"", "N", "No", "1", "true"} {
		if yes(v) {
			t.Errorf("yes(%q) = true", v)
		}
	}
}

func TestAtBoundsSafe(t *testing.T) {
	values := []string{"a", " b "}
	if at(values, 1) != "b" {
		t.Errorf("at trims whitespace")
	}
	if at(values, 5) != "" || at(values, -1) != "" {
		t.Errorf("out-of-range access must return empty")
	}
}
