package core

import (
	"testing"
	"time"
)

func TestParseYYMMDD(t *testing.T) {
	cases := []struct {
		in  string
		out Date
		ok  bool
	}{
		{"250824", NewDate(2025, time.August, 24), true},
		{"250101", NewDate(2025, time.January, 1), true},
		{"240229", NewDate(2024, time.February, 29), true}, // leap day
		{"250229", Date{}, false},                          // not a leap year
		{"250832", Date{}, false},
		{"251301", Date{}, false},
		{"25081", Date{}, false}, // too short
		{"2508241", Date{}, false},
		{"25o824", Date{}, false},
		{"+11231", Date{}, false}, // sign is not a digit
		{"-50824", Date{}, false},
		{" 50824", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseYYMMDD(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		in          Date
		first, last Date
	}{
		{NewDate(2025, time.August, 24), NewDate(2025, time.August, 1), NewDate(2025, time.August, 31)},
		{NewDate(2025, time.February, 3), NewDate(2025, time.February, 1), NewDate(2025, time.February, 28)},
		{NewDate(2024, time.February, 3), NewDate(2024, time.February, 1), NewDate(2024, time.February, 29)},
	}
	for _, tc := range cases {
		first, last := tc.in.MonthRange()
		if first != tc.first || last != tc.last {
			t.Fatalf("%v expected [%v, %v], got [%v, %v]", tc.in, tc.first, tc.last, first, last)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2025, time.August, 24)
	b := NewDate(2025, time.September, 1)
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("expected %v < %v", a, b)
	}
	if !b.After(a) {
		t.Fatalf("expected %v after %v", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Fatalf("a date must not order before or after itself")
	}
}

func TestDateStrings(t *testing.T) {
	d := NewDate(2025, time.August, 4)
	if got := d.String(); got != "2025-08-04" {
		t.Fatalf("String() = %q", got)
	}
	if got := d.MonthDay(); got != "08-04" {
		t.Fatalf("MonthDay() = %q", got)
	}
}

func TestDateOf(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 23:30 UTC on the 23rd is already the 24th in Shanghai.
	utc := time.Date(2025, time.August, 23, 23, 30, 0, 0, time.UTC)
	if got := DateOf(utc.In(loc)); got != NewDate(2025, time.August, 24) {
		t.Fatalf("DateOf = %v", got)
	}
}
