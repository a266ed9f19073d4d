package wire

import "strings"

// Terminators and separators of the response grammar.
const (
	// HelloPrefix starts the greeting the server sends on connect.
	HelloPrefix = "OK MPD "

	// Success terminates a successful response.
	Success = "OK"

	// ListOK separates results inside a command list.
	ListOK = "list_OK"

	// AckPrefix starts an error line.
	AckPrefix = "ACK "

	// PairSeparator splits a response line into key and value.
	PairSeparator = ": "

	// BinaryKey announces a raw byte payload of the given length.
	BinaryKey = "binary"
)

// LineKind classifies a response line.
type LineKind uint8

const (
	// LinePair is a "key: value" line.
	LinePair LineKind = iota
	// LineSuccess is the "OK" terminator.
	LineSuccess
	// LineListOK is the "list_OK" separator.
	LineListOK
	// LineAck is an "ACK ..." error line.
	LineAck
	// LineText is any other line, without a pair separator.
	LineText
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LinePair:
		return "PAIR"
	case LineSuccess:
		return "OK"
	case LineListOK:
		return "LIST_OK"
	case LineAck:
		return "ACK"
	case LineText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Line is one classified response line.
// Text always holds the raw line without its newline.
type Line struct {
	Kind  LineKind
	Text  string
	Key   string
	Value string
	Ack   *AckError
}

// ParseLine classifies a response line. The trailing newline must already
// be stripped.
func ParseLine(text string) Line {
	switch {
	case text == Success:
		return Line{Kind: LineSuccess, Text: text}
	case text == ListOK:
		return Line{Kind: LineListOK, Text: text}
	case strings.HasPrefix(text, AckPrefix):
		return Line{Kind: LineAck, Text: text, Ack: parseAck(text[len(AckPrefix):])}
	}

	key, value, ok := strings.Cut(text, PairSeparator)
	if !ok {
		return Line{Kind: LineText, Text: text}
	}
	return Line{Kind: LinePair, Text: text, Key: key, Value: value}
}

// IsTerminator reports whether the line ends a response.
func (l Line) IsTerminator() bool {
	return l.Kind == LineSuccess || l.Kind == LineAck
}

// ParseHello extracts the protocol version from the greeting line.
func ParseHello(text string) (string, bool) {
	if !strings.HasPrefix(text, HelloPrefix) {
		return "", false
	}
	version := strings.TrimSpace(text[len(HelloPrefix):])
	if version == "" {
		return "", false
	}
	return version, true
}
