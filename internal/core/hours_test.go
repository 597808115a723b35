package core

import "testing"

func TestParseHours(t *testing.T) {
	cases := []struct {
		in  string
		out Hours
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"2.5", 250, true},
		{"2,5", 250, true},
		{"2.25", 225, true},
		{"0.01", 1, true},
		{" 2.50 ", 250, true},
		{"2.255", 0, false}, // three fraction digits
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"1.٠", 0, false}, // arabic-indic zero in fraction
		{"١.5", 0, false}, // arabic-indic one in integer part
		{"١٢.5", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseHours(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestHoursFormat(t *testing.T) {
	cases := []struct {
		in  Hours
		out string
	}{
		{200, "2"},
		{250, "2.5"},
		{225, "2.25"},
		{205, "2.05"},
		{1, "0.01"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := tc.in.Format(); got != tc.out {
			t.Fatalf("Format(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestHoursValidate(t *testing.T) {
	if err := Hours(1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Hours(0).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}
