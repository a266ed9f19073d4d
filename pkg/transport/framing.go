package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// Framing constants.
const (
	// DefaultMaxLineSize is the default maximum response line length (1 MiB).
	DefaultMaxLineSize = 1 << 20

	// DefaultMaxBinarySize is the default maximum binary payload of one
	// response (16 MiB).
	DefaultMaxBinarySize = 16 << 20

	// DefaultBufferSize is the read buffer size.
	DefaultBufferSize = 32 * 1024

	// MaxLogLineSize is the maximum line text to include in logs (4 KB).
	MaxLogLineSize = 4096
)

// Framing errors.
var (
	// ErrLineTooLong indicates a response line exceeds the maximum size.
	ErrLineTooLong = errors.New("line too long")

	// ErrLineTruncated indicates the stream ended in the middle of a line.
	ErrLineTruncated = errors.New("line truncated")

	// ErrInvalidLine indicates an outgoing line containing a newline.
	ErrInvalidLine = errors.New("line contains newline")

	// ErrMissingNewline indicates a binary payload not followed by a newline.
	ErrMissingNewline = errors.New("missing newline after binary data")

	// ErrBinaryTooLarge indicates an announced binary payload above the
	// configured maximum.
	ErrBinaryTooLarge = errors.New("binary payload too large")
)

// LineWriter writes newline-terminated request lines.
type LineWriter struct {
	w  io.Writer
	mu sync.Mutex

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewLineWriter creates a new line writer.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// SetLogger configures logging for this writer.
// Pass nil to disable logging.
func (lw *LineWriter) SetLogger(logger log.Logger, connID string) {
	lw.logger = logger
	lw.connID = connID
}

// WriteLine writes line followed by a newline in a single write.
// Thread-safe: can be called from multiple goroutines.
func (lw *LineWriter) WriteLine(line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidLine, line)
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, err := io.WriteString(lw.w, line+"\n"); err != nil {
		return fmt.Errorf("%w: write failed: %w", wire.ErrConnection, err)
	}

	if lw.logger != nil {
		lw.logger.Log(makeLineEvent(lw.connID, line, log.DirectionOut))
	}
	return nil
}

// LineReader reads newline-terminated response lines and binary payloads.
type LineReader struct {
	r             *bufio.Reader
	maxLineSize   int
	maxBinarySize int

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewLineReader creates a new line reader.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:             bufio.NewReaderSize(r, DefaultBufferSize),
		maxLineSize:   DefaultMaxLineSize,
		maxBinarySize: DefaultMaxBinarySize,
	}
}

// NewLineReaderWithMaxSize creates a line reader with a custom line limit.
func NewLineReaderWithMaxSize(r io.Reader, maxSize int) *LineReader {
	lr := NewLineReader(r)
	lr.maxLineSize = maxSize
	return lr
}

// SetMaxBinarySize sets the largest payload ReadBinary accepts.
func (lr *LineReader) SetMaxBinarySize(n int) {
	lr.maxBinarySize = n
}

// SetLogger configures logging for this reader.
// Pass nil to disable logging.
func (lr *LineReader) SetLogger(logger log.Logger, connID string) {
	lr.logger = logger
	lr.connID = connID
}

// ReadLine reads one line and returns it without the newline.
// Every failure is wrapped in wire.ErrConnection: a stream that ended or
// broke mid-response cannot be resynchronized.
func (lr *LineReader) ReadLine() (string, error) {
	var buf []byte
	for {
		chunk, err := lr.r.ReadSlice('\n')
		if len(buf)+len(chunk) > lr.maxLineSize+1 {
			return "", fmt.Errorf("%w: %w: more than %d bytes", wire.ErrConnection, ErrLineTooLong, lr.maxLineSize)
		}
		buf = append(buf, chunk...)

		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) && len(buf) > 0 {
			return "", fmt.Errorf("%w: %w", wire.ErrConnection, ErrLineTruncated)
		}
		return "", fmt.Errorf("%w: %w", wire.ErrConnection, err)
	}

	line := string(buf[:len(buf)-1])
	if lr.logger != nil {
		lr.logger.Log(makeLineEvent(lr.connID, line, log.DirectionIn))
	}
	return line, nil
}

// ReadBinary reads exactly n payload bytes and the newline that follows
// them. Lengths above the maximum binary size are a protocol error and
// nothing is read.
func (lr *LineReader) ReadBinary(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative binary length %d", wire.ErrProtocol, n)
	}
	if n > lr.maxBinarySize {
		return nil, fmt.Errorf("%w: %w: %d bytes, limit is %d", wire.ErrProtocol, ErrBinaryTooLarge, n, lr.maxBinarySize)
	}

	data := make([]byte, n)
	if _, err := io.ReadFull(lr.r, data); err != nil {
		return nil, fmt.Errorf("%w: reading %d binary bytes: %w", wire.ErrConnection, n, err)
	}
	nl, err := lr.r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wire.ErrConnection, err)
	}
	if nl != '\n' {
		return nil, fmt.Errorf("%w: %w", wire.ErrConnection, ErrMissingNewline)
	}

	if lr.logger != nil {
		lr.logger.Log(log.Event{
			Timestamp:    time.Now(),
			ConnectionID: lr.connID,
			Direction:    log.DirectionIn,
			Layer:        log.LayerTransport,
			Category:     log.CategoryMessage,
			Line:         &log.LineEvent{Size: n + 1, Binary: true},
		})
	}
	return data, nil
}

// makeLineEvent creates a log event for a protocol line.
func makeLineEvent(connID, line string, direction log.Direction) log.Event {
	text := line
	truncated := false
	if len(text) > MaxLogLineSize {
		text = text[:MaxLogLineSize]
		truncated = true
	}

	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Line: &log.LineEvent{
			Text:      text,
			Size:      len(line) + 1,
			Truncated: truncated,
		},
	}
}
