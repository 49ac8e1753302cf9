package main

import (
	"fmt"
	"io"

	"github.com/d1ced/jsontree"
	"github.com/go-kit/log/level"
	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	logger := cfg.logger("check")
	if len(args) == 0 {
		args = []string{"-"}
	}
	colors := cfg.palette(cc.Out)
	failed := 0
	for _, arg := range args {
		data, err := readDocument(cc.In, arg)
		if err != nil {
			return err
		}
		if !checkDocument(cc.Out, colors, arg, data, cfg.Trailing) {
			failed++
		}
	}
	level.Debug(logger).Log("msg", "checked documents", "total", len(args), "failed", failed)
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDocument writes "name: ok" or "name:line:col: ..." for data to w and
// reports whether data parsed.
func checkDocument(w io.Writer, colors *palette, name string, data []byte, trailing bool) bool {
	_, err := jsontree.Parse(data, trailing)
	if err == nil {
		fmt.Fprintf(w, "%s: %s\n", name, colors.ok.Sprint("ok"))
		return true
	}
	fmt.Fprintf(w, "%s:%s\n", name, colors.fail.Sprint(err.Error()))
	return false
}
