// Package shell is the interactive REPL: it reads command lines, expands
// and tokenizes them, dispatches builtins, and executes external commands
// resolved through the parallel PATH index in package discovery.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"

	"github.com/home-lang/den/concurrency"
	"github.com/home-lang/den/config"
	"github.com/home-lang/den/discovery"
	"github.com/home-lang/den/log"
	"github.com/home-lang/den/platform"
)

// Shell ties the REPL together. One Shell owns one concurrency.Pool for the
// whole session; discovery scans and suggestion ranking share it.
type Shell struct {
	cfg      *config.Config
	state    *config.State
	pool     *concurrency.Pool
	builtins *Registry
	history  *History
	prompt   *Prompt
	diag     *Diag

	idxMu sync.Mutex
	idx   *discovery.Index

	lastStatus int

	stdin  io.Reader
	out    io.Writer
	errOut io.Writer
}

// New creates a shell reading from stdin and writing to stdout/stderr.
func New(cfg *config.Config) *Shell {
	return NewWithIO(cfg, os.Stdin, os.Stdout, os.Stderr)
}

// NewWithIO creates a shell with explicit streams; tests use this.
func NewWithIO(cfg *config.Config, stdin io.Reader, out, errOut io.Writer) *Shell {
	state := config.LoadState()
	interactive := false
	if f, ok := stdin.(*os.File); ok {
		interactive = platform.IsInteractive(f)
	}
	width := 80
	if f, ok := out.(*os.File); ok && interactive {
		width = platform.Width(f)
	}

	s := &Shell{
		cfg:      cfg,
		state:    state,
		pool:     concurrency.NewPool(cfg.Workers),
		builtins: NewRegistry(),
		history:  NewHistory(state.History, cfg.HistorySize),
		prompt:   NewPrompt(cfg, interactive),
		stdin:    stdin,
		out:      out,
		errOut:   errOut,
	}
	s.diag = NewDiag(errOut, width, s.prompt.styled)

	// Warm the command index off the startup path. Deliberately a plain
	// goroutine: building the index fans out over the pool and waits, so
	// running it on a pool worker could deadlock a one-worker pool.
	go s.ensureIndex()

	return s
}

// Close drains the pool and persists history.
func (s *Shell) Close() {
	s.pool.Shutdown()
	s.state.History = s.history.Entries()
	if err := config.SaveState(s.state, s.cfg.HistorySize); err != nil {
		log.WarningLog.Printf("failed to save shell state: %v", err)
	}
}

// Pool exposes the session pool for subsystems that fan out work.
func (s *Shell) Pool() *concurrency.Pool {
	return s.pool
}

// ensureIndex returns the PATH command index, building it on first use.
func (s *Shell) ensureIndex() *discovery.Index {
	s.idxMu.Lock()
	defer s.idxMu.Unlock()
	if s.idx == nil {
		dirs := discovery.SplitPathList(os.Getenv("PATH"))
		s.idx = discovery.BuildIndex(s.pool, s.cfg.ShardCount, dirs)
		log.InfoLog.Printf("indexed %d commands from %d PATH entries", s.idx.Len(), len(dirs))
	}
	return s.idx
}

// invalidateIndex drops the index so the next lookup rescans PATH.
func (s *Shell) invalidateIndex() {
	s.idxMu.Lock()
	s.idx = nil
	s.idxMu.Unlock()
}

// Run is the interactive loop. It returns the exit code the process should
// end with.
func (s *Shell) Run() int {
	platform.SetupJobControl()

	// The shell stays alive on Ctrl-C; the foreground child shares the
	// terminal's process group and receives the signal itself.
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)
	go func() {
		for range sigint {
			fmt.Fprintln(s.out)
		}
	}()

	reader := bufio.NewReader(s.stdin)
	for {
		fmt.Fprint(s.out, s.prompt.Render(s.lastStatus))

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(s.out)
				return s.lastStatus
			}
			log.ErrorLog.Printf("read error: %v", err)
			return 1
		}

		status, exit := s.evalLine(line)
		s.lastStatus = status
		if exit != nil {
			return exit.code
		}
	}
}

// EvalString runs a single command line non-interactively (den -c "...").
func (s *Shell) EvalString(line string) int {
	status, exit := s.evalLine(line)
	if exit != nil {
		return exit.code
	}
	return status
}

// evalLine expands, tokenizes, and dispatches one command line. A panic
// anywhere below is confined to the line: it is logged with its stack trace
// and turned into a failing status rather than ending the session.
func (s *Shell) evalLine(line string) (status int, exit *exitRequest) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorLog.Printf("panic evaluating %q: %v\n%s", line, r, debug.Stack())
			s.diag.Errorf("internal error: %v", r)
			status = 1
		}
	}()

	tokens, err := Tokenize(line)
	if err != nil {
		s.diag.Errorf("%v", err)
		return 2, nil
	}
	words := ExpandTokens(tokens)
	if len(words) == 0 {
		return s.lastStatus, nil
	}

	s.history.Add(trimmed(line))

	name := words[0]
	if b, ok := s.builtins.Lookup(name); ok {
		if err := b.Run(s, words[1:]); err != nil {
			var req exitRequest
			if errors.As(err, &req) {
				return s.lastStatus, &req
			}
			s.diag.Errorf("%v", err)
			return 1, nil
		}
		return 0, nil
	}

	path, ok := s.lookupCommand(name)
	if !ok {
		s.diag.CommandNotFound(name, s.suggestFor(name))
		return 127, nil
	}
	return s.runExternal(path, words), nil
}

// suggestFor ranks typo-correction candidates for an unknown command across
// builtins and every indexed PATH executable.
func (s *Shell) suggestFor(name string) []string {
	if !s.cfg.SuggestTypos {
		return nil
	}
	candidates := append(s.ensureIndex().Names(), s.builtins.Names()...)
	return discovery.Suggest(s.pool, name, candidates, s.cfg.MaxSuggestions)
}

func trimmed(line string) string {
	end := len(line)
	for end > 0 && (line[end-1] == '\n' || line[end-1] == '\r') {
		end--
	}
	start := 0
	for start < end && (line[start] == ' ' || line[start] == '\t') {
		start++
	}
	return line[start:end]
}
