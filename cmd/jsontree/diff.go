package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/d1ced/jsontree"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return errors.Wrapf(cli.ErrUsage, "diff requires 2 args, got %v", args)
	}
	logger := cfg.logger("diff")
	var docs [2]*jsontree.Value
	for i, arg := range args {
		data, err := readDocument(cc.In, arg)
		if err != nil {
			return err
		}
		if docs[i], err = jsontree.Parse(data, cfg.Trailing); err != nil {
			return errors.Wrapf(err, "error decoding %s", arg)
		}
	}
	if docs[0].Equal(docs[1]) {
		level.Debug(logger).Log("msg", "documents are equal", "a", args[0], "b", args[1])
		return nil
	}
	diffs := lineDiff(prettyText(docs[0]), prettyText(docs[1]))
	if err := writeLineDiff(cc.Out, cfg.palette(cc.Out), diffs); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func prettyText(v *jsontree.Value) string {
	return strings.ReplaceAll(jsontree.Write(v, true), "\r\n", "\n")
}

// lineDiff compares a and b line by line.
func lineDiff(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeLineDiff prints every line of diffs prefixed with "-", "+" or " ".
func writeLineDiff(w io.Writer, colors *palette, diffs []diffpatch.Diff) error {
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", colors.del.Sprint
		case diffpatch.DiffInsert:
			prefix, paint = "+", colors.add.Sprint
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintln(w, paint(prefix+strings.TrimSuffix(line, "\n"))); err != nil {
				return errors.Wrap(err, "write diff")
			}
		}
	}
	return nil
}
