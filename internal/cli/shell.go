package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"golang.org/x/sys/unix"
)

const (
	shellPrompt      = "todo> "
	shellHistoryFile = ".todo_history"
)

var errNoInput = errors.New("shell needs an input stream")

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage:   "shell",
		Aliases: []string{"repl"},
		Short:   "Run commands interactively",
		Long: `Read commands line by line and run each against the todo files, as if
passed to todo directly. Every command reloads the lists, so edits made
elsewhere are picked up. Type "help" for commands, "exit" or Ctrl-D to leave.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return runShell(ctx, o, a)
		},
	}
}

// shellCommands builds a fresh command set; flag sets keep state between
// parses, so each line gets new ones.
func shellCommands(a *app) []*Command {
	var cmds []*Command

	for _, cmd := range commands(a) {
		if cmd.Name() != "shell" {
			cmds = append(cmds, cmd)
		}
	}

	return cmds
}

func runShell(ctx context.Context, o *IO, a *app) error {
	reader, err := newLineReader(a)
	if err != nil {
		return err
	}

	defer func() { _ = reader.Close() }()

	for ctx.Err() == nil {
		line, err := reader.Prompt(shellPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		reader.AppendHistory(strings.Join(fields, " "))

		switch fields[0] {
		case "exit", "quit", "q":
			return nil
		case "help", "?":
			for _, cmd := range shellCommands(a) {
				o.Println(cmd.HelpLine())
			}

			o.Printf("  %-22s %s\n", "exit", "Leave the shell")

			continue
		}

		cmd := findCommand(shellCommands(a), fields[0])
		if cmd == nil {
			o.ErrPrintln("error:", fmt.Errorf("%w: %s", errUnknownCommand, fields[0]))

			continue
		}

		// Errors are printed by Run; the shell keeps going.
		_ = cmd.Run(ctx, o, fields[1:])
	}

	return nil
}

// lineReader is the input side of the shell.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

func newLineReader(a *app) (lineReader, error) {
	if a.stdin == nil {
		return nil, errNoInput
	}

	file, ok := a.stdin.(*os.File)
	if !ok || file != os.Stdin || !isTerminal(file) {
		return &scanReader{scanner: bufio.NewScanner(a.stdin)}, nil
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(func(line string) []string {
		var out []string

		for _, cmd := range shellCommands(a) {
			if strings.HasPrefix(cmd.Name(), line) {
				out = append(out, cmd.Name())
			}
		}

		return out
	})

	reader := &linerReader{state: state}

	if home := a.env["HOME"]; home != "" {
		reader.historyPath = filepath.Join(home, shellHistoryFile)

		if f, err := os.Open(reader.historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return reader, nil
}

func isTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)

	return err == nil
}

// linerReader reads from a terminal with line editing and history.
type linerReader struct {
	state       *liner.State
	historyPath string
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	return r.state.Prompt(prompt)
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

func (r *linerReader) Close() error {
	if r.historyPath != "" {
		if f, err := os.Create(r.historyPath); err == nil {
			_, _ = r.state.WriteHistory(f)
			_ = f.Close()
		}
	}

	return r.state.Close()
}

// scanReader reads plain lines from a pipe or file.
type scanReader struct {
	scanner *bufio.Scanner
}

func (r *scanReader) Prompt(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}

	err := r.scanner.Err()
	if err != nil {
		return "", err
	}

	return "", io.EOF
}

func (*scanReader) AppendHistory(string) {}

func (*scanReader) Close() error { return nil }
