package main

import "sync"

// sensitive tracks in-flight secret buffers (the master passphrase, and
// any intermediate key material the CLI itself holds outside the
// library's own defer-wiped scopes) so a signal handler can zero them
// before the process exits. The library packages wipe their own state on
// every return path; this registry exists only to cover the CLI's own
// short-lived copies (e.g. the []byte read by term.ReadPassword).
var sensitive = struct {
	mu      sync.Mutex
	buffers [][]byte
}{}

// registerSensitive tracks buf for wiping by wipeSensitive. It does not
// take ownership of buf's lifetime; the caller is still responsible for
// calling unregisterSensitive (typically via defer) once it wipes buf
// itself on the normal path.
func registerSensitive(buf []byte) {
	sensitive.mu.Lock()
	defer sensitive.mu.Unlock()
	sensitive.buffers = append(sensitive.buffers, buf)
}

// unregisterSensitive removes buf from the registry without wiping it,
// for use after the caller has already wiped it on the normal return
// path.
func unregisterSensitive(buf []byte) {
	sensitive.mu.Lock()
	defer sensitive.mu.Unlock()
	if len(buf) == 0 {
		return
	}
	for i, b := range sensitive.buffers {
		if len(b) > 0 && &b[0] == &buf[0] {
			sensitive.buffers = append(sensitive.buffers[:i], sensitive.buffers[i+1:]...)
			return
		}
	}
}

// wipeSensitive zeros every currently registered buffer. Called from the
// signal handler on interrupt, so that a Ctrl-C during password entry or
// derivation does not leave the master passphrase sitting in memory any
// longer than necessary.
func wipeSensitive() {
	sensitive.mu.Lock()
	defer sensitive.mu.Unlock()
	for _, b := range sensitive.buffers {
		for i := range b {
			b[i] = 0
		}
	}
	sensitive.buffers = nil
}

// clearScreen clears the terminal the same way the portable fallback in
// the original implementation did: an ANSI clear-and-home sequence. A
// terminal that does not understand it simply ignores the escape bytes.
func clearScreen() {
	print("\x1b[2J\x1b[H")
}
