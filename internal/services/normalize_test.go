package services

import "testing"

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{" Ravi Kumar ", "ravi kumar"},
		{"RAVI KUMAR", "ravi kumar"},
		{"ravi   kumar", "ravi kumar"},
		{"\tRavi\n Kumar", "ravi kumar"},
		{"ravi kumar", "ravi kumar"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{" Ravi Kumar ", "RAVI  KUMAR", "ravi kumar"}
	for _, in := range inputs {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeMobile(t *testing.T) {
	t.Parallel()

	if got := NormalizeMobile("  9988776655 "); got != "9988776655" {
		t.Errorf("NormalizeMobile trim: got %q", got)
	}
	// no case folding, the value is numeric
	if got := NormalizeMobile("9988776655"); got != "9988776655" {
		t.Errorf("NormalizeMobile passthrough: got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"ravi kumar", "Ravi Kumar"},
		{"RAVI KUMAR", "Ravi Kumar"},
		{" pune  west ", "Pune West"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TitleCase(tc.in); got != tc.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
