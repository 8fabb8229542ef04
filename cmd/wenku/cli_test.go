package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/wenku/cmd/wenku"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"ocr", "build", "tags", "date", "init", "schema", "list", "show"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--raw-dir", "/data/raw", "ocr", "-c", "4", "doc-1", "doc-2"})

	require.NoError(t, err)
	assert.Equal(t, "/data/raw", cli.RawDir)
	assert.Equal(t, "ocr_cache", cli.CacheDir)
	assert.Equal(t, "paddle", cli.Engine)
	assert.Equal(t, 4, cli.OCR.Concurrency)
	assert.Equal(t, []string{"doc-1", "doc-2"}, cli.OCR.Documents)
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	t.Run("help returns nil and lists commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		for _, cmd := range commands {
			assert.Contains(t, stdout.String(), cmd)
		}
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("unknown command is an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"frobnicate"}, stdout, stderr)

		assert.Error(t, err)
	})

	t.Run("unknown engine is rejected", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--engine", "abbyy", "ocr"}, stdout, stderr)

		assert.Error(t, err)
	})

	t.Run("unknown conversion config is rejected", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--opencc", "no-such-config", "build"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: opencc config")
	})
}
