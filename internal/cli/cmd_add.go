package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/todocommander/internal/model"
)

// AddCmd returns the add command.
func AddCmd(a *app) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("add", flag.ContinueOnError),
		Usage:   "add <text>...",
		Aliases: []string{"a"},
		RawArgs: true,
		Short:   "Append a task, prints its index",
		Long: `Append a task to the todo list. All arguments are joined with spaces and
parsed as one todo.txt line, so +project, @context, due:, t: and rec:
fields are recognized. Words starting with "-" are task text too.
Prints the index of the new task.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execAdd(ctx, o, a, args)
		},
	}
}

func execAdd(ctx context.Context, o *IO, a *app, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return errTextRequired
	}

	var index int

	err := a.mutate(ctx, model.AddCommand(text), func(m *model.Model) {
		index = m.Todo.Len() - 1
	})
	if err != nil {
		return err
	}

	o.Println("Added", index)

	return nil
}
