package main

import (
	"io"

	"github.com/d1ced/jsontree"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/scott-cotton/cli"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	logger := cfg.logger("fmt")
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		data, err := readDocument(cc.In, arg)
		if err != nil {
			return err
		}
		if err := formatDocument(cc.Out, data, cfg.fmtOptions()); err != nil {
			return errors.Wrapf(err, "format %s", arg)
		}
		level.Debug(logger).Log("msg", "formatted document", "file", arg, "bytes", len(data))
	}
	return nil
}

type fmtOptions struct {
	compact  bool
	trailing bool
	sort     bool
}

func (cfg *FmtConfig) fmtOptions() fmtOptions {
	return fmtOptions{compact: cfg.Compact, trailing: cfg.Trailing, sort: cfg.Sort}
}

// formatDocument parses data and writes it to w. Compact output gets a
// trailing newline; pretty output already ends with a line ending.
func formatDocument(w io.Writer, data []byte, opts fmtOptions) error {
	v, err := jsontree.Parse(data, opts.trailing)
	if err != nil {
		return err
	}
	if opts.sort {
		v.SortKeys()
	}
	if _, err := jsontree.WriteTo(w, v, !opts.compact); err != nil {
		return errors.Wrap(err, "write")
	}
	if opts.compact {
		_, err = io.WriteString(w, "\n")
	}
	return errors.Wrap(err, "write")
}
