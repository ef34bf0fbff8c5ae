package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/todocommander/internal/model"
)

// ArchiveCmd returns the archive command.
func ArchiveCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("archive", flag.ContinueOnError),
		Usage: "archive <index>",
		Short: "Move a task to the done list",
		Long:  "Remove the task at <index> from the todo list and append it, unchanged, to the done list.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			index, err := parseIndex(args)
			if err != nil {
				return err
			}

			err = a.mutate(ctx, model.ArchiveCommand(index), nil)
			if err != nil {
				return err
			}

			o.Println("Archived", index)

			return nil
		},
	}
}
