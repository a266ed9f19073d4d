package shell

import (
	"bufio"
	"io"
)

// scanner reads lines from a plain io.Reader.
type scanner struct {
	s *bufio.Scanner
}

// NewScanner returns a LineReader over r, for piped input.
func NewScanner(r io.Reader) LineReader {
	return &scanner{s: bufio.NewScanner(r)}
}

func (r *scanner) Readline() (string, error) {
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
