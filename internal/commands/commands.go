package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/shlex"
)

const prefix = "cmd "

// ErrMissing is returned by Execute for an empty command line.
var ErrMissing = errors.New("commands: missing subcommand")

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse with the names of the flags
// given on that line.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(given map[string]bool) error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a flag set that reports parse errors instead of exiting and keeps
// its usage output off stderr.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "rotate").
// fs is that command's FlagSet; run is called once args[1:] parse cleanly.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(given map[string]bool) error) {
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help returns one "name  usage" line per command.
func (r *Registry) Help() []string {
	var lines []string
	for _, n := range r.Names() {
		lines = append(lines, fmt.Sprintf("%s  %s", n, r.cmds[n].Usage))
	}
	return lines
}

// Parse interprets line as a console line. If line starts with "cmd " (case-sensitive),
// the rest is split shell-style (quotes group words) and returned with ok true.
func Parse(line string) (args []string, ok bool, err error) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false, nil
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true, nil
	}
	args, err = shlex.Split(rest)
	if err != nil {
		return nil, true, fmt.Errorf("commands: %w", err)
	}
	return args, true, nil
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Flags are reset to their defaults before every parse, and only flags on this line
// count as given.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return ErrMissing
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("commands: unknown command: %s", name)
	}
	// A FlagSet remembers every flag it ever parsed, so each line gets a fresh set
	// bound to the same values.
	fs := NewFlagSet(name)
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
		fs.Var(f.Value, f.Name, f.Usage)
	})
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("commands: %s: %w", name, err)
	}
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })
	return cmd.Run(given)
}
