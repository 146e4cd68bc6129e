//go:build unix

package platform

import (
	"os/signal"

	"golang.org/x/sys/unix"
)

// SetupJobControl ignores the terminal job-control stops an interactive
// shell must survive: SIGTTOU/SIGTTIN arrive when the shell touches the tty
// from the background, SIGQUIT is reserved for foreground children.
func SetupJobControl() {
	signal.Ignore(unix.SIGTTOU, unix.SIGTTIN, unix.SIGQUIT)
}
