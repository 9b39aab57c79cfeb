// Package ui provides the small set of terminal-interaction helpers the
// interactive CLI needs: detecting whether stdin is a real terminal and
// reading a masked passphrase when it is, falling back to a plain line
// read otherwise (piped input, redirected files, CI).
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// IsTerminal reports whether the file descriptor fd is attached to a
// terminal. This is the Go rendering of the teacher's terminal_tty.go,
// updated to golang.org/x/term — the successor to the now-deprecated
// golang.org/x/crypto/ssh/terminal the teacher imported.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// ReadPassword reads a line from fd without echoing it, if fd is a
// terminal; otherwise it reads one line from br verbatim (the case where
// stdin has been redirected from a file or pipe, in which there is
// nothing to mask). The trailing newline is stripped either way. br must
// wrap the same underlying descriptor as fd so that a caller reading a
// mix of masked and plain prompts never loses buffered bytes between
// calls.
func ReadPassword(fd int, br *bufio.Reader) ([]byte, error) {
	if IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		if err != nil {
			return nil, fmt.Errorf("ui: reading masked input: %w", err)
		}
		return pw, nil
	}

	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("ui: reading input: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// ReadLine reads and returns one line from br, trimming surrounding
// whitespace. Used for the non-secret prompts (username, site, version,
// length) where masking is neither needed nor wanted.
func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ui: reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
