package shell

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/home-lang/den/log"
)

// lookupCommand resolves a command name to an executable path. Names
// containing a path separator bypass PATH; everything else goes through the
// parallel-scan index, with exec.LookPath as a fallback for commands
// installed since the last scan.
func (s *Shell) lookupCommand(name string) (string, bool) {
	if strings.ContainsRune(name, '/') {
		info, err := os.Stat(name)
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0111 == 0 {
			return "", false
		}
		return name, true
	}

	if path, ok := s.ensureIndex().Lookup(name); ok {
		return path, true
	}
	if path, err := exec.LookPath(name); err == nil {
		log.DebugLog.Printf("index miss for %s, found via LookPath; PATH changed since last scan", name)
		return path, true
	}
	return "", false
}

// runExternal executes a resolved command with the shell's stdio and returns
// its exit status.
func (s *Shell) runExternal(path string, argv []string) int {
	cmd := exec.Command(path)
	cmd.Args = argv
	cmd.Stdin = s.stdin
	cmd.Stdout = s.out
	cmd.Stderr = s.errOut

	err := cmd.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	s.diag.Errorf("%s: %v", argv[0], err)
	return 126
}
