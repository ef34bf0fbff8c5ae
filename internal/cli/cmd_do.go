package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/todocommander/internal/model"
)

// DoCmd returns the do command.
func DoCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("do", flag.ContinueOnError),
		Usage: "do <index>",
		Short: "Mark a task completed today",
		Long:  "Mark the task at <index> completed with today's date. The task stays in the todo list until archived.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execStatus(ctx, o, a, args, model.DoCommand, "Completed")
		},
	}
}

// UndoCmd returns the undo command.
func UndoCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("undo", flag.ContinueOnError),
		Usage: "undo <index>",
		Short: "Reopen a completed task",
		Long:  "Set the task at <index> back to open. Any completion date is dropped.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execStatus(ctx, o, a, args, model.UndoCommand, "Reopened")
		},
	}
}

func execStatus(ctx context.Context, o *IO, a *app, args []string, build func(int) model.Command, verb string) error {
	index, err := parseIndex(args)
	if err != nil {
		return err
	}

	err = a.mutate(ctx, build(index), nil)
	if err != nil {
		return err
	}

	o.Println(verb, index)

	return nil
}
