package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/todocommander/internal/config"
	"github.com/calvinalkan/todocommander/internal/model"
	"github.com/calvinalkan/todocommander/internal/store"
)

var (
	errIndexRequired  = errors.New("index is required")
	errInvalidIndex   = errors.New("invalid index")
	errTextRequired   = errors.New("task text is required")
	errUnexpectedArgs = errors.New("unexpected arguments")
)

// app is the state commands share for one invocation.
type app struct {
	cfg   config.Config
	store *store.Store
	log   *log.Logger
	stdin io.Reader
	env   map[string]string

	// now is the clock "do" stamps entries with; nil means time.Now.
	now func() time.Time
}

// commands returns every command in help order.
func commands(a *app) []*Command {
	return []*Command{
		AddCmd(a),
		ArchiveCmd(a),
		DoCmd(a),
		UndoCmd(a),
		LsCmd(a),
		ShellCmd(a),
		PrintConfigCmd(a),
	}
}

// mutate runs cmd under the store lock and saves the result. after, if
// non-nil, sees the model once cmd succeeded.
func (a *app) mutate(ctx context.Context, cmd model.Command, after func(m *model.Model)) error {
	a.log.Debug("executing", "command", cmd.String())

	err := a.store.Update(ctx, func(m *model.Model) error {
		m.Now = a.now

		execErr := m.Execute(cmd)
		if execErr != nil {
			return execErr
		}

		if after != nil {
			after(m)
		}

		return nil
	})
	if err != nil {
		return err
	}

	a.log.Debug("saved", "todo", a.store.TodoPath, "done", a.store.DonePath)

	return nil
}

// parseIndex reads the single zero-based index argument.
func parseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errIndexRequired
	}

	if len(args) > 1 {
		return 0, fmt.Errorf("%w: %s", errUnexpectedArgs, strings.Join(args[1:], " "))
	}

	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %s", errInvalidIndex, args[0])
	}

	return index, nil
}
