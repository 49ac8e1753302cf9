package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/scott-cotton/cli"
)

func jsontreeMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.log = newLogger(os.Stderr, cfg.Verbose)
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return errors.Wrapf(cli.ErrNoSuchCommand, "%q not found", args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		// The caller prints usage for ErrUsage too, so report only the
		// subcommand's usage and hand back its exit code.
		sub.Usage(cc, err)
		return cli.ExitCodeErr(sub.Exit(cc, err))
	}
	return err
}

// readDocument reads the named file, or r for "-".
func readDocument(r io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(r)
		return data, errors.Wrap(err, "read stdin")
	}
	data, err := os.ReadFile(name)
	return data, errors.Wrapf(err, "read %s", name)
}
