// Package cli implements the todo command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/todocommander/internal/config"
	"github.com/calvinalkan/todocommander/internal/store"
)

// Version is the program version, overridable at link time.
var Version = "0.1.0"

var (
	errNoCommand      = errors.New("no command provided")
	errUnknownCommand = errors.New("unknown command")
)

// Run is the main entry point. Returns exit code.
//
// A signal received on sigCh cancels the running command; mutating commands
// then exit without writing.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	a := &app{stdin: stdin, env: env}
	cmds := commands(a)

	globalFlags := newGlobalFlags()

	if len(args) < 2 {
		printUsage(out, globalFlags.set, cmds)

		return 0
	}

	err := globalFlags.set.Parse(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, globalFlags.set, cmds)

		return 1
	}

	if *globalFlags.help {
		printUsage(out, globalFlags.set, cmds)

		return 0
	}

	if *globalFlags.version {
		fprintln(out, "todo", Version)

		return 0
	}

	remaining := globalFlags.set.Args()
	if len(remaining) == 0 {
		fprintln(errOut, "error:", errNoCommand)
		printUsage(errOut, globalFlags.set, cmds)

		return 1
	}

	a.log = newLogger(errOut, *globalFlags.verbose || env["TODO_DEBUG"] != "")

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:  *globalFlags.workDir,
		ConfigPath:       *globalFlags.configPath,
		TodoFileOverride: *globalFlags.todoFile,
		DoneFileOverride: *globalFlags.doneFile,
		HasTodoOverride:  globalFlags.set.Changed("todo-file"),
		HasDoneOverride:  globalFlags.set.Changed("done-file"),
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	a.log.Debug("config loaded",
		"todo", cfg.TodoFileAbs,
		"done", cfg.DoneFileAbs,
		"global", cfg.Sources.Global,
		"legacy", cfg.Sources.Legacy,
		"project", cfg.Sources.Project,
	)

	a.cfg = cfg
	a.store = store.New(cfg.TodoFileAbs, cfg.DoneFileAbs)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		cancel()
		wg.Wait()
	}()

	if sigCh != nil {
		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case sig := <-sigCh:
				a.log.Warn("interrupted", "signal", sig)
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	name := remaining[0]

	cmd := findCommand(cmds, name)
	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
		printUsage(errOut, globalFlags.set, cmds)

		return 1
	}

	a.log.Debug("dispatch", "command", cmd.Name(), "args", remaining[1:])

	return cmd.Run(ctx, NewIO(out, errOut), remaining[1:])
}

type globalFlags struct {
	set        *flag.FlagSet
	workDir    *string
	configPath *string
	todoFile   *string
	doneFile   *string
	verbose    *bool
	help       *bool
	version    *bool
}

func newGlobalFlags() globalFlags {
	set := flag.NewFlagSet("todo", flag.ContinueOnError)
	set.SetInterspersed(false)
	set.SetOutput(io.Discard)

	return globalFlags{
		set:        set,
		workDir:    set.StringP("cwd", "C", "", "Run as if started in `dir`"),
		configPath: set.StringP("config", "c", "", "Use specified config `file`"),
		todoFile:   set.StringP("todo-file", "f", "", "Todo list `file` [default: todo.txt]"),
		doneFile:   set.StringP("done-file", "d", "", "Done list `file` [default: done.txt]"),
		verbose:    set.BoolP("verbose", "v", false, "Log diagnostics to stderr"),
		help:       set.BoolP("help", "h", false, "Show help"),
		version:    set.Bool("version", false, "Print version"),
	}
}

func findCommand(cmds []*Command, name string) *Command {
	for _, cmd := range cmds {
		if cmd.Matches(name) {
			return cmd
		}
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer, flags *flag.FlagSet, cmds []*Command) {
	fprintln(writer, `todo - todo.txt task list

Usage: todo [flags] <command> [args]

Global flags:`)

	var buf strings.Builder
	flags.SetOutput(&buf)
	flags.PrintDefaults()
	flags.SetOutput(io.Discard)

	_, _ = io.WriteString(writer, buf.String())

	fprintln(writer)
	fprintln(writer, "Commands:")

	for _, cmd := range cmds {
		fprintln(writer, cmd.HelpLine())
	}
}
