//go:build windows

package arena

import "golang.org/x/sys/windows"

// Lock attempts to page-lock buf via VirtualLock. See the unix variant's
// doc comment for the failure-handling contract.
func Lock(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return windows.VirtualLock(&buf[0], uintptr(len(buf)))
}

// Unlock releases a page lock previously obtained via Lock.
func Unlock(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return windows.VirtualUnlock(&buf[0], uintptr(len(buf)))
}
