package version

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"1", Version{Major: 1, Precision: 1}},
		{"v2", Version{Major: 2, Precision: 1}},
		{"1.2", Version{Major: 1, Minor: 2, Precision: 2}},
		{"v1.2.3", Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}},
		{"0.0.0", Version{Precision: 3}},
		{"1.2.3-rc1", Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}},
		{"1.2.3+abc123", Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseVersion(tc.input)
			if err != nil {
				t.Fatalf("ParseVersion(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseVersionErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyVersion},
		{"1.2.3.4", ErrTooManyComponents},
		{"a.b.c", ErrNonNumeric},
		{"1..2", ErrNonNumeric},
		{"1.", ErrNonNumeric},
		{"-1", ErrNegativeComponent},
		{"1.-2", ErrNegativeComponent},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, err := ParseVersion(tc.input)
			if !errors.Is(err, tc.want) {
				t.Errorf("ParseVersion(%q) error = %v, want %v", tc.input, err, tc.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{Version{Major: 1, Precision: 1}, "1"},
		{Version{Major: 1, Minor: 2, Precision: 2}, "1.2"},
		{Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}, "1.2.3"},
	}
	for _, tc := range tests {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"2.0.0", "1.9.9", 1},
		{"1.2", "1.2.9", 0}, // lower precision wins
		{"1", "1.9.9", 0},
		{"1.3", "1.2.9", 1},
	}
	for _, tc := range tests {
		a, b := MustParseVersion(tc.a), MustParseVersion(tc.b)
		if got := a.Compare(b); got != tc.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEqualsOrNewer(t *testing.T) {
	if !MustParseVersion("1.3").EqualsOrNewer(MustParseVersion("1.2.9")) {
		t.Error("1.3 should be newer than 1.2.9")
	}
	if MustParseVersion("1.1").EqualsOrNewer(MustParseVersion("1.2")) {
		t.Error("1.1 should not be newer than 1.2")
	}
}

func FuzzParseVersion(f *testing.F) {
	f.Add("1")
	f.Add("v1.2.3")
	f.Add("")
	f.Add("..")
	f.Add("-1")
	f.Add("1.2.3-rc1")
	f.Add("999.999.999")

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVersion(input)
		if err == nil {
			if !v.IsValid() {
				t.Errorf("ParseVersion(%q) returned invalid version %+v", input, v)
			}
			// Round trip must reparse cleanly
			if _, err := ParseVersion(v.String()); err != nil {
				t.Errorf("Round trip of %q failed: %v", input, err)
			}
		}
	})
}
