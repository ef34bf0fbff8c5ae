package cli_test

import (
	"bytes"
	"os"
	"sync"
	"syscall"
	"testing"

	"github.com/calvinalkan/todocommander/internal/cli"
)

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--invalid-flag", "ls")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")

	// Should show valid global options
	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--cwd")
	cli.AssertContains(t, stderr, "--todo-file")
	cli.AssertContains(t, stderr, "--done-file")
}

func Test_Empty_Todo_File_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--todo-file=", "ls")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "todo-file cannot be empty")
}

func Test_Bare_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	// Call Run directly without test helper (which adds --cwd)
	var stdout, stderr bytes.Buffer

	exitCode := cli.Run(nil, &stdout, &stderr, []string{"todo"}, nil, nil)

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stderr.String(), ""; got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stdout.String(), "todo - todo.txt task list")
	cli.AssertContains(t, stdout.String(), "--cwd")
	cli.AssertContains(t, stdout.String(), "add <text>...")
}

func Test_Main_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
	}{
		{name: "long flag", args: []string{"--help"}},
		{name: "short flag", args: []string{"-h"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout, stderr, exitCode := c.Run(tt.args...)

			if got, want := exitCode, 0; got != want {
				t.Errorf("exitCode=%d, want=%d", got, want)
			}

			if got, want := stderr, ""; got != want {
				t.Errorf("stderr=%q, want=%q", got, want)
			}

			cli.AssertContains(t, stdout, "todo - todo.txt task list")
			cli.AssertContains(t, stdout, "add <text>...")
			cli.AssertContains(t, stdout, "archive <index>")
			cli.AssertContains(t, stdout, "do <index>")
			cli.AssertContains(t, stdout, "undo <index>")
			cli.AssertContains(t, stdout, "ls [flags]")
			cli.AssertContains(t, stdout, "shell")
			cli.AssertContains(t, stdout, "print-config")
		})
	}
}

func Test_Version_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--version")

	if got, want := stdout, "todo "+cli.Version; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_No_Command_With_Flags_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--verbose")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "no command provided")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Unknown_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Command_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		args  []string
		usage string
	}{
		{args: []string{"add", "--help"}, usage: "Usage: todo add <text>..."},
		{args: []string{"archive", "-h"}, usage: "Usage: todo archive <index>"},
		{args: []string{"do", "--help"}, usage: "Usage: todo do <index>"},
		{args: []string{"undo", "--help"}, usage: "Usage: todo undo <index>"},
		{args: []string{"ls", "--help"}, usage: "Usage: todo ls [flags]"},
		{args: []string{"print-config", "--help"}, usage: "Usage: todo print-config [--json]"},
	} {
		t.Run(tt.args[0], func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout := c.MustRun(tt.args...)

			cli.AssertContains(t, stdout, tt.usage)
		})
	}
}

func Test_Command_Invalid_Flag_Shows_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("ls", "--bogus")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag: --bogus")
	cli.AssertContains(t, stdout, "Usage: todo ls [flags]")
}

func Test_Verbose_Logs_To_Stderr_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("-v", "add", "call mom")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	if got, want := stdout, "Added 0\n"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "config loaded")
	cli.AssertContains(t, stderr, "dispatch")
}

func Test_Debug_Env_Enables_Logging_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Env["TODO_DEBUG"] = "1"

	_, stderr, exitCode := c.Run("ls")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "config loaded")
}

func Test_Quiet_By_Default_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	_, stderr, exitCode := c.Run("add", "call mom")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stderr, ""; got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}
}

func Test_Signal_Before_Write_Leaves_Files_Untouched_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("todo.txt", "keep me\n")

	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGTERM

	// The handler goroutine may or may not win the race against the command;
	// either the write is skipped or it completes fully.
	var stdout bytes.Buffer

	stderr := &lockedBuffer{}

	exitCode := cli.Run(nil, &stdout, stderr, []string{"todo", "--cwd", c.Dir, "archive", "0"}, c.Env, sigCh)

	todo, done := c.ReadFile("todo.txt"), c.ReadFile("done.txt")

	switch exitCode {
	case 0:
		if todo != "" || done != "keep me\n" {
			t.Errorf("partial write: todo=%q done=%q", todo, done)
		}
	default:
		cli.AssertContains(t, stderr.String(), "not saved")

		if got, want := todo, "keep me\n"; got != want {
			t.Errorf("todo=%q, want=%q", got, want)
		}

		if got, want := done, ""; got != want {
			t.Errorf("done=%q, want=%q", got, want)
		}
	}
}

// lockedBuffer is written by the command and the signal logger at once.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
