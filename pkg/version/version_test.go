package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"0.23", Version{0, 23, 0}},
		{"0.23.5", Version{0, 23, 5}},
		{"0.24.0", Version{0, 24, 0}},
		{"1.0.12", Version{1, 0, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, v, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"0.23.5.1",
		"0.x",
		"-1.0",
		"0..1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	v, err := Parse("0.23")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "0.23.0" {
		t.Errorf("String() = %q, want %q", v.String(), "0.23.0")
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"0.23.5", "0.23.5", 0},
		{"0.22.4", "0.23.0", -1},
		{"0.23.0", "0.22.11", 1},
		{"1.0.0", "0.99.99", 1},
		{"0.21.0", "0.21.1", -1},
	}

	for _, tt := range tests {
		a, _ := Parse(tt.a)
		b, _ := Parse(tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := a.AtLeast(b); got != (tt.want >= 0) {
			t.Errorf("%s.AtLeast(%s) = %v", tt.a, tt.b, got)
		}
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		server, command string
		want            bool
	}{
		{"0.23.5", "getvol", true},
		{"0.22.11", "getvol", false},
		{"0.22.3", "binarylimit", false},
		{"0.22.4", "binarylimit", true},
		{"0.20.0", "albumart", false},
		{"0.20.0", "status", true},
		{"garbage", "getvol", true},
	}

	for _, tt := range tests {
		if got := Supports(tt.server, tt.command); got != tt.want {
			t.Errorf("Supports(%q, %q) = %v, want %v", tt.server, tt.command, got, tt.want)
		}
	}
}

func TestIntroduced(t *testing.T) {
	v, ok := Introduced("readpicture")
	if !ok || v != (Version{0, 22, 0}) {
		t.Errorf("Introduced(readpicture) = %v, %v", v, ok)
	}
	if _, ok := Introduced("play"); ok {
		t.Error("play predates the table")
	}
}
