package wire

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "no arguments",
			cmd:  NewCommand("status"),
			want: "status",
		},
		{
			name: "string argument",
			cmd:  NewCommand("add", String("music/a b.flac")),
			want: `add "music/a b.flac"`,
		},
		{
			name: "integer argument",
			cmd:  NewCommand("play", Int(3)),
			want: `play "3"`,
		},
		{
			name: "escaped quote and backslash",
			cmd:  NewCommand("find", String("title"), String(`say "hi" \o/`)),
			want: `find "title" "say \"hi\" \\o/"`,
		},
		{
			name: "open range",
			cmd:  NewCommand("playlistinfo", RangeAll()),
			want: `playlistinfo ":"`,
		},
		{
			name: "half-open range",
			cmd:  NewCommand("delete", RangeFrom(5)),
			want: `delete "5:"`,
		},
		{
			name: "closed range",
			cmd:  NewCommand("delete", RangeOf(2, 7)),
			want: `delete "2:7"`,
		},
		{
			name: "colon string is not a range",
			cmd:  NewCommand("add", String("1:2")),
			want: `add "1:2"`,
		},
		{
			name: "multi-word name",
			cmd:  NewCommand("sticker get", String("song"), String("a.mp3"), String("rating")),
			want: `sticker get "song" "a.mp3" "rating"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeCommand(tt.cmd); got != tt.want {
				t.Errorf("EncodeCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`a"b`,
		`a\b`,
		`\"`,
		`trailing\`,
		"unicode ☃ and spaces",
		`"already quoted"`,
	}

	for _, in := range inputs {
		quoted := Quote(in)
		out, err := Unquote(quoted)
		if err != nil {
			t.Fatalf("Unquote(%q) failed: %v", quoted, err)
		}
		if out != in {
			t.Errorf("round trip of %q produced %q", in, out)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, in := range []string{"", "x", `"open`, `"ends with escape\"`, `"a" tail`} {
		if _, err := Unquote(in); err == nil {
			t.Errorf("Unquote(%q) expected error", in)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`status`, []string{"status"}},
		{`  play   "3" `, []string{"play", "3"}},
		{`add "a b\"c"`, []string{"add", `a b"c`}},
		{`sticker get "song" "x"`, []string{"sticker", "get", "song", "x"}},
		{`find "" ""`, []string{"find", "", ""}},
	}

	for _, tt := range tests {
		got, err := SplitArgs(tt.line)
		if err != nil {
			t.Fatalf("SplitArgs(%q) failed: %v", tt.line, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("SplitArgs(%q) = %q, want %q", tt.line, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitArgs(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
			}
		}
	}

	if _, err := SplitArgs(`add "open`); !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("expected ErrUnterminatedQuote, got %v", err)
	}
}

func TestBuildCommand(t *testing.T) {
	cmd, err := BuildCommand("seek", 2, uint8(30), 1.5, true, RangeOf(1, 2), time.Second)
	if err != nil {
		t.Fatalf("BuildCommand failed: %v", err)
	}
	want := `seek "2" "30" "1.5" "1" "1:2" "1s"`
	if got := EncodeCommand(cmd); got != want {
		t.Errorf("EncodeCommand() = %q, want %q", got, want)
	}

	if _, err := BuildCommand("add", []int{1}); !errors.Is(err, ErrBadArgument) {
		t.Errorf("expected ErrBadArgument, got %v", err)
	}
}

func TestBuildCommandLargeUnsigned(t *testing.T) {
	cmd, err := BuildCommand("seekid", uint64(math.MaxUint64), uint(7))
	if err != nil {
		t.Fatalf("BuildCommand failed: %v", err)
	}
	want := `seekid "18446744073709551615" "7"`
	if got := EncodeCommand(cmd); got != want {
		t.Errorf("EncodeCommand() = %q, want %q", got, want)
	}
}

func TestBuildCommandRejectsLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		arg  any
	}{
		{"newline", "a\nclear"},
		{"carriage return", "a\rclear"},
		{"typed string", String("x\ny")},
		{"stringer", stringer("one\ntwo")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildCommand("find", tt.arg); !errors.Is(err, ErrBadArgument) {
				t.Errorf("expected ErrBadArgument, got %v", err)
			}
		})
	}
	if err := CheckArg(String("no breaks")); err != nil {
		t.Errorf("CheckArg() = %v, want nil", err)
	}
}

type stringer string

func (s stringer) String() string { return string(s) }
