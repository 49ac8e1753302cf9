package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Verbose bool `cli:"name=v desc='log debug messages'"`
	Color   bool `cli:"name=color desc='color output even when not writing to a terminal'"`

	Out      string
	CloseOut func() error

	Main *cli.Command

	log log.Logger
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// logger returns the command logger tagged with the subcommand name.
func (cfg *MainConfig) logger(cmd string) log.Logger {
	l := cfg.log
	if l == nil {
		l = log.NewNopLogger()
	}
	return log.With(l, "cmd", cmd)
}

// palette returns the colors for output written to w. Colors are on with
// -color, or when w is a terminal and NO_COLOR is unset.
func (cfg *MainConfig) palette(w io.Writer) *palette {
	if cfg.Color {
		return newPalette(true)
	}
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return newPalette(false)
	}
	return newPalette(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

type palette struct {
	ok, fail *color.Color
	add, del *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		add:  color.New(color.FgGreen),
		del:  color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.add, p.del} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

type FmtConfig struct {
	*MainConfig
	Compact  bool `cli:"name=compact desc='write without whitespace'"`
	Trailing bool `cli:"name=trailing desc='accept a comma before a closing bracket'"`
	Sort     bool `cli:"name=sort desc='order object members by key'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Trailing bool `cli:"name=trailing desc='accept a comma before a closing bracket'"`

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Trailing bool `cli:"name=trailing desc='accept a comma before a closing bracket'"`

	Diff *cli.Command
}
