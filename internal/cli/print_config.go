package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/todocommander/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(a *app) *Command {
	flags := flag.NewFlagSet("print-config", flag.ContinueOnError)
	asJSON := flags.Bool("json", false, "Print as .todo.json content")

	return &Command{
		Flags: flags,
		Usage: "print-config [--json]",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			if *asJSON {
				formatted, err := config.Format(a.cfg)
				if err != nil {
					return err
				}

				io.Println(formatted)

				return nil
			}

			return execPrintConfig(io, a)
		},
	}
}

func execPrintConfig(io *IO, a *app) error {
	cfg := a.cfg

	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("todo_file=" + cfg.TodoFileAbs)
	io.Println("done_file=" + cfg.DoneFileAbs)

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Legacy == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Legacy != "" {
			io.Println("legacy_config=" + cfg.Sources.Legacy)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
