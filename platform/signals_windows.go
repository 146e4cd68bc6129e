//go:build windows

package platform

// SetupJobControl is a no-op on Windows, which has no tty job control.
func SetupJobControl() {}
