package cli

import (
	"context"
	"slices"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	project := flags.String("project", "", "Only tasks tagged +`name`")
	taskContext := flags.String("context", "", "Only tasks tagged @`name`")

	return &Command{
		Flags:   flags,
		Usage:   "ls [flags]",
		Aliases: []string{"list"},
		Short:   "List tasks with their index",
		Long:    "Print every task of the todo list as \"<index> <line>\". Indices are the ones archive, do and undo take.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errUnexpectedArgs
			}

			m, err := a.store.Load()
			if err != nil {
				return err
			}

			for i, line := range m.List() {
				entry := m.Todo.Entries[i]

				if flags.Changed("project") && !slices.Contains(entry.Projects(), *project) {
					continue
				}

				if flags.Changed("context") && !slices.Contains(entry.Contexts(), *taskContext) {
					continue
				}

				o.Printf("%d %s\n", i, line)
			}

			return nil
		},
	}
}
