package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Scanner reads plain lines of any length, for piped input and tests.
type Scanner struct {
	r  *bufio.Reader
	in io.Reader
}

func NewScanner(in io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(in), in: in}
}

// ReadLine ignores the prompt; the console prints it. A last line without
// a newline is still returned before io.EOF.
func (s *Scanner) ReadLine(string) (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Scanner) Close() error {
	if c, ok := s.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
