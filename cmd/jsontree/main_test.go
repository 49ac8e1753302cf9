package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/scott-cotton/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormatDocument(t *testing.T) {
	tests := []struct {
		have string
		opts fmtOptions
		want string
	}{
		{`{"b":[1,2],"a":{}}`, fmtOptions{}, "{\r\n   \"b\": [ 1, 2 ],\r\n   \"a\": {}\r\n}\r\n"},
		{`{"b":[1,2],"a":{}}`, fmtOptions{compact: true, sort: true}, "{\"a\":{},\"b\":[1,2]}\n"},
		{"// c\n[1, /* two */ 2,]", fmtOptions{compact: true, trailing: true}, "[1,2]\n"},
	}
	for _, test := range tests {
		b := &bytes.Buffer{}
		if err := formatDocument(b, []byte(test.have), test.opts); err != nil {
			t.Errorf("%q: %v", test.have, err)
			continue
		}
		if b.String() != test.want {
			t.Errorf("%q: got %q, want %q", test.have, b.String(), test.want)
		}
	}

	b := &bytes.Buffer{}
	assert.Error(t, formatDocument(b, []byte("[1,]"), fmtOptions{}))
	assert.Empty(t, b.String())
}

func TestCheckDocument(t *testing.T) {
	colors := newPalette(false)
	b := &bytes.Buffer{}
	assert.True(t, checkDocument(b, colors, "good.json", []byte(`{"a": [1]}`), false))
	assert.False(t, checkDocument(b, colors, "bad.json", []byte(`{"a": nul}`), false))
	assert.False(t, checkDocument(b, colors, "comma.json", []byte(`[1,]`), false))
	assert.True(t, checkDocument(b, colors, "comma.json", []byte(`[1,]`), true))
	want := strings.Join([]string{
		"good.json: ok",
		`bad.json:1:7: lexical error: invalid token, expected value near "nul}"`,
		`comma.json:1:3: structural error: trailing comma before ']' near ","`,
		"comma.json: ok",
		"",
	}, "\n")
	assert.Equal(t, want, b.String())
}

func TestLineDiff(t *testing.T) {
	a := "{\n   \"a\": 1,\n   \"b\": true\n}\n"
	b := "{\n   \"a\": 2,\n   \"b\": true\n}\n"
	out := &bytes.Buffer{}
	require.NoError(t, writeLineDiff(out, newPalette(false), lineDiff(a, b)))
	want := strings.Join([]string{
		" {",
		"-   \"a\": 1,",
		"+   \"a\": 2,",
		"    \"b\": true",
		" }",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())

	out.Reset()
	require.NoError(t, writeLineDiff(out, newPalette(true), lineDiff(a, b)))
	assert.Contains(t, out.String(), "\x1b[")
}

func TestPalette(t *testing.T) {
	cfg := &MainConfig{}
	assert.Equal(t, "ok", cfg.palette(&bytes.Buffer{}).ok.Sprint("ok"))
	cfg.Color = true
	assert.NotEqual(t, "ok", cfg.palette(&bytes.Buffer{}).ok.Sprint("ok"))
}

func TestLogger(t *testing.T) {
	b := &bytes.Buffer{}
	cfg := &MainConfig{log: newLogger(b, false)}
	logger := cfg.logger("fmt")
	level.Debug(logger).Log("msg", "hidden")
	level.Info(logger).Log("msg", "shown")
	assert.Equal(t, "level=info cmd=fmt msg=shown\n", b.String())

	b.Reset()
	level.Debug(newLogger(b, true)).Log("msg", "shown")
	assert.Equal(t, "level=debug msg=shown\n", b.String())

	assert.NotPanics(t, func() { (&MainConfig{}).logger("check").Log("msg", "dropped") })
}

func TestReadDocument(t *testing.T) {
	data, err := readDocument(strings.NewReader("[1]"), "-")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(data))

	data, err = readDocument(nil, filepath.Join("..", "..", "testdata", "webapp.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = readDocument(nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestSubcommandUsageClosesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	stderr := &bytes.Buffer{}
	cc := &cli.Context{
		In:  io.NopCloser(strings.NewReader("")),
		Out: nopWriteCloser{io.Discard},
		Err: nopWriteCloser{stderr},
		Go:  context.Background(),
	}
	err := MainCommand().Run(cc, []string{"-o", out, "diff", "only-one.json"})

	var code cli.ExitCodeErr
	require.True(t, errors.As(err, &code), "got %v", err)
	assert.Equal(t, cli.ExitCodeErr(1), code)
	assert.False(t, errors.Is(err, cli.ErrUsage))
	assert.Contains(t, stderr.String(), "synopsis: diff")

	f, ok := cc.Out.(*os.File)
	require.True(t, ok)
	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
