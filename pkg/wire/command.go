package wire

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Argument errors.
var (
	// ErrBadArgument indicates a value that cannot be encoded as an
	// argument: an unsupported type or text containing a line break.
	ErrBadArgument = errors.New("bad argument")

	// ErrUnterminatedQuote indicates a quoted token without a closing quote.
	ErrUnterminatedQuote = errors.New("unterminated quoted string")
)

// Arg is a single command argument.
// The set of implementations is closed: String, Int and Range.
type Arg interface {
	// Encode returns the argument as it appears on the wire, quoted.
	Encode() string
	isArg()
}

// String is a text argument.
type String string

// Encode quotes and escapes the string.
func (s String) Encode() string { return Quote(string(s)) }

func (String) isArg() {}

// Int is an integer argument.
type Int int64

// Encode renders the decimal value in quotes.
func (i Int) Encode() string { return Quote(strconv.FormatInt(int64(i), 10)) }

func (Int) isArg() {}

// Range is a song position range. Zero, one or two bounds are valid:
// RangeAll renders ":", RangeFrom renders "a:", RangeOf renders "a:b".
type Range struct {
	Start    int
	End      int
	HasStart bool
	HasEnd   bool
}

// RangeAll returns the open range ":".
func RangeAll() Range { return Range{} }

// RangeFrom returns the half-open range "start:".
func RangeFrom(start int) Range { return Range{Start: start, HasStart: true} }

// RangeOf returns the range "start:end".
func RangeOf(start, end int) Range {
	return Range{Start: start, End: end, HasStart: true, HasEnd: true}
}

// Encode renders the range in quotes.
func (r Range) Encode() string { return Quote(r.String()) }

// String returns the unquoted range text.
func (r Range) String() string {
	var b strings.Builder
	if r.HasStart {
		b.WriteString(strconv.Itoa(r.Start))
	}
	b.WriteByte(':')
	if r.HasStart && r.HasEnd {
		b.WriteString(strconv.Itoa(r.End))
	}
	return b.String()
}

func (Range) isArg() {}

// Command is a request: a command name and its ordered arguments.
// The name is written verbatim, so multi-word names such as "sticker get"
// are valid.
type Command struct {
	Name string
	Args []Arg
}

// NewCommand creates a command from already typed arguments.
func NewCommand(name string, args ...Arg) Command {
	return Command{Name: name, Args: args}
}

// BuildCommand converts loosely typed values into arguments.
// Accepted: Arg values, string, all integer kinds, float32/float64, bool
// (as 0/1) and fmt.Stringer.
func BuildCommand(name string, args ...any) (Command, error) {
	cmd := Command{Name: name, Args: make([]Arg, 0, len(args))}
	for i, a := range args {
		arg, err := ToArg(a)
		if err != nil {
			return Command{}, fmt.Errorf("%s: argument %d: %w", name, i, err)
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}

// ToArg converts a single Go value into an argument. Unsigned values
// beyond the int64 range are kept as decimal text.
func ToArg(v any) (Arg, error) {
	var arg Arg
	switch a := v.(type) {
	case Arg:
		arg = a
	case string:
		arg = String(a)
	case int:
		arg = Int(a)
	case int8:
		arg = Int(a)
	case int16:
		arg = Int(a)
	case int32:
		arg = Int(a)
	case int64:
		arg = Int(a)
	case uint:
		arg = unsigned(uint64(a))
	case uint8:
		arg = Int(a)
	case uint16:
		arg = Int(a)
	case uint32:
		arg = Int(a)
	case uint64:
		arg = unsigned(a)
	case float32:
		arg = String(strconv.FormatFloat(float64(a), 'f', -1, 32))
	case float64:
		arg = String(strconv.FormatFloat(a, 'f', -1, 64))
	case bool:
		arg = Int(0)
		if a {
			arg = Int(1)
		}
	case fmt.Stringer:
		arg = String(a.String())
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrBadArgument, v)
	}
	if err := CheckArg(arg); err != nil {
		return nil, err
	}
	return arg, nil
}

// CheckArg rejects text arguments that would split the request line.
func CheckArg(a Arg) error {
	if s, ok := a.(String); ok && strings.ContainsAny(string(s), "\r\n") {
		return fmt.Errorf("%w: line break in %q", ErrBadArgument, string(s))
	}
	return nil
}

func unsigned(u uint64) Arg {
	if u > math.MaxInt64 {
		return String(strconv.FormatUint(u, 10))
	}
	return Int(u)
}

// EncodeCommand renders the command line without the trailing newline.
func EncodeCommand(cmd Command) string {
	if len(cmd.Args) == 0 {
		return cmd.Name
	}
	var b strings.Builder
	b.WriteString(cmd.Name)
	for _, a := range cmd.Args {
		b.WriteByte(' ')
		b.WriteString(a.Encode())
	}
	return b.String()
}

// String returns the encoded command line.
func (c Command) String() string { return EncodeCommand(c) }

// Quote wraps s in double quotes, escaping backslashes and quotes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote reverses Quote. The input must start and end with a double quote.
func Unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' {
		return "", fmt.Errorf("%w: %q", ErrUnterminatedQuote, s)
	}
	tok, rest, err := readQuoted(s)
	if err != nil {
		return "", err
	}
	if rest != "" {
		return "", fmt.Errorf("trailing data after quoted string: %q", rest)
	}
	return tok, nil
}

// SplitArgs tokenizes a request line into the command name and its
// unquoted arguments. Unquoted tokens are split on whitespace; quoted
// tokens may contain spaces and escapes. Multi-word command names are
// returned as separate tokens.
func SplitArgs(line string) ([]string, error) {
	var tokens []string
	s := strings.TrimLeft(line, " \t")
	for s != "" {
		var tok string
		if s[0] == '"' {
			var err error
			tok, s, err = readQuoted(s)
			if err != nil {
				return nil, err
			}
		} else {
			end := strings.IndexAny(s, " \t")
			if end < 0 {
				end = len(s)
			}
			tok, s = s[:end], s[end:]
		}
		tokens = append(tokens, tok)
		s = strings.TrimLeft(s, " \t")
	}
	return tokens, nil
}

// readQuoted consumes one quoted token from the start of s.
func readQuoted(s string) (string, string, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
			if i >= len(s) {
				return "", "", ErrUnterminatedQuote
			}
			b.WriteByte(s[i])
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", ErrUnterminatedQuote
}
