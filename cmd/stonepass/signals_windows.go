//go:build windows

package main

import (
	"os"
	"os/signal"
)

// handleSignals is the Windows counterpart to the Unix handler in
// signals.go: os.Kill cannot actually be caught by a Go program on any
// platform (Notify silently drops it), so in practice this only ever
// fires for os.Interrupt, but both are registered to mirror the
// teacher's own signal set.
func handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, os.Kill)

	for sig := range signals {
		switch sig {
		case os.Interrupt, os.Kill:
			wipeSensitive()
			clearScreen()
			os.Exit(130)
		}
	}
}
