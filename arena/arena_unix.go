//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

// Package arena best-effort page-locks the KDF's memory arena so the
// kernel is discouraged from paging secret-derived intermediate state to
// swap. This is the Go rendering of spec.md's "mlock/VirtualLock or
// equivalent" resource policy, split per-OS the way the teacher's own
// signals.go/signals_bsd.go/signals_windows.go are split per-OS for a
// different concern (signal handling).
package arena

import "golang.org/x/sys/unix"

// Lock attempts to page-lock buf. Failure is never fatal: the caller logs
// a warning and proceeds, per spec.md §9 ("treat failure as a warning, not
// a fatal error").
func Lock(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return unix.Mlock(buf)
}

// Unlock releases a page lock previously obtained via Lock. Errors are
// ignored by callers for the same reason as Lock: this is hygiene, not a
// correctness requirement.
func Unlock(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return unix.Munlock(buf)
}
