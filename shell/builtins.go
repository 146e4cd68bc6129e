package shell

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// Builtin is a command handled inside the shell process.
type Builtin struct {
	Name    string
	Summary string
	Run     func(s *Shell, args []string) error
}

// Registry holds the builtin dispatch table. Registration is single-threaded
// (startup and external loaders run before the REPL); lookups during
// execution are reads only.
type Registry struct {
	builtins map[string]Builtin
}

// NewRegistry creates a registry preloaded with the standard builtins.
func NewRegistry() *Registry {
	r := &Registry{builtins: make(map[string]Builtin)}
	for _, b := range standardBuiltins {
		r.Register(b)
	}
	return r
}

// Register adds or replaces a builtin. This is the seam external builtin
// loaders plug into.
func (r *Registry) Register(b Builtin) {
	r.builtins[b.Name] = b
}

// Lookup finds a builtin by name.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Names returns all registered builtin names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// exitRequest unwinds the REPL when the exit builtin runs.
type exitRequest struct {
	code int
}

func (e exitRequest) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

var standardBuiltins = []Builtin{
	{
		Name:    "cd",
		Summary: "change the working directory",
		Run: func(s *Shell, args []string) error {
			var target string
			switch {
			case len(args) == 0:
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("cd: cannot determine home directory: %w", err)
				}
				target = home
			case args[0] == "-":
				target = os.Getenv("OLDPWD")
				if target == "" {
					return fmt.Errorf("cd: OLDPWD not set")
				}
				fmt.Fprintln(s.out, target)
			default:
				target = args[0]
			}

			oldpwd, _ := os.Getwd()
			if err := os.Chdir(target); err != nil {
				return fmt.Errorf("cd: %w", err)
			}
			pwd, err := os.Getwd()
			if err == nil {
				os.Setenv("OLDPWD", oldpwd)
				os.Setenv("PWD", pwd)
			}
			return nil
		},
	},
	{
		Name:    "pwd",
		Summary: "print the working directory",
		Run: func(s *Shell, args []string) error {
			pwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("pwd: %w", err)
			}
			fmt.Fprintln(s.out, pwd)
			return nil
		},
	},
	{
		Name:    "exit",
		Summary: "exit the shell",
		Run: func(s *Shell, args []string) error {
			code := s.lastStatus
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("exit: numeric argument required")
				}
				code = n
			}
			return exitRequest{code: code}
		},
	},
	{
		Name:    "echo",
		Summary: "print arguments",
		Run: func(s *Shell, args []string) error {
			newline := true
			if len(args) > 0 && args[0] == "-n" {
				newline = false
				args = args[1:]
			}
			fmt.Fprint(s.out, strings.Join(args, " "))
			if newline {
				fmt.Fprintln(s.out)
			}
			return nil
		},
	},
	{
		Name:    "export",
		Summary: "set environment variables",
		Run: func(s *Shell, args []string) error {
			if len(args) == 0 {
				env := os.Environ()
				sort.Strings(env)
				for _, kv := range env {
					fmt.Fprintln(s.out, kv)
				}
				return nil
			}
			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return fmt.Errorf("export: %s: expected NAME=VALUE", arg)
				}
				if err := os.Setenv(name, value); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				if name == "PATH" {
					s.invalidateIndex()
				}
			}
			return nil
		},
	},
	{
		Name:    "unset",
		Summary: "unset environment variables",
		Run: func(s *Shell, args []string) error {
			for _, name := range args {
				if err := os.Unsetenv(name); err != nil {
					return fmt.Errorf("unset: %w", err)
				}
			}
			return nil
		},
	},
	{
		Name:    "env",
		Summary: "print the environment",
		Run: func(s *Shell, args []string) error {
			for _, kv := range os.Environ() {
				fmt.Fprintln(s.out, kv)
			}
			return nil
		},
	},
	{
		Name:    "history",
		Summary: "print command history",
		Run: func(s *Shell, args []string) error {
			for i, entry := range s.history.Entries() {
				fmt.Fprintf(s.out, "%5d  %s\n", i+1, entry)
			}
			return nil
		},
	},
	{
		Name:    "which",
		Summary: "locate a command",
		Run: func(s *Shell, args []string) error {
			var missing []string
			for _, name := range args {
				if _, ok := s.builtins.Lookup(name); ok {
					fmt.Fprintf(s.out, "%s: shell builtin\n", name)
					continue
				}
				if path, ok := s.lookupCommand(name); ok {
					fmt.Fprintln(s.out, path)
					continue
				}
				missing = append(missing, name)
			}
			if len(missing) > 0 {
				return fmt.Errorf("which: not found: %s", strings.Join(missing, " "))
			}
			return nil
		},
	},
	{
		Name:    "rehash",
		Summary: "rebuild the command index from PATH",
		Run: func(s *Shell, args []string) error {
			s.invalidateIndex()
			idx := s.ensureIndex()
			fmt.Fprintf(s.out, "indexed %d commands\n", idx.Len())
			return nil
		},
	},
	{
		Name:    "complete",
		Summary: "list commands matching a prefix",
		Run: func(s *Shell, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			matches := s.Complete(prefix)
			if len(matches) == 0 {
				return fmt.Errorf("complete: no matches for %q", prefix)
			}
			fmt.Fprint(s.out, RenderColumns(matches, s.diag.width))
			return nil
		},
	},
	{
		Name:    "clip",
		Summary: "copy arguments to the system clipboard",
		Run: func(s *Shell, args []string) error {
			if err := clipboard.WriteAll(strings.Join(args, " ")); err != nil {
				return fmt.Errorf("clip: %w", err)
			}
			return nil
		},
	},
	{
		Name:    "help",
		Summary: "list builtins",
		Run: func(s *Shell, args []string) error {
			for _, name := range s.builtins.Names() {
				b, _ := s.builtins.Lookup(name)
				fmt.Fprintf(s.out, "%-10s %s\n", b.Name, b.Summary)
			}
			return nil
		},
	},
}
