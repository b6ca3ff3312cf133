package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toki-take-home/fsdump/internal/firestore"
)

// captureStdout runs f and returns everything it wrote to os.Stdout.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan []byte)
	go func() {
		b, _ := io.ReadAll(r)
		done <- b
	}()
	f()
	w.Close()
	return string(<-done)
}

func TestDefaultCommandIsDump(t *testing.T) {
	var c cli
	parser, err := newParser(&c)
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"--collection", "usage", "--format", "json"})
	require.NoError(t, err)
	assert.Equal(t, "dump", ctx.Command())
	assert.Equal(t, "usage", c.Dump.Collection)
	assert.Equal(t, "(default)", c.Database)
}

func TestDumpMissingCredentials(t *testing.T) {
	var c cli
	var stderr bytes.Buffer
	exitCode := 0
	parser, err := newParser(&c,
		kong.Writers(io.Discard, &stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "toki-take-home-774e713e21c1.json")
	ctx, err := parser.Parse([]string{"--credentials", missing, "dump"})
	require.NoError(t, err)

	var runErr error
	out := captureStdout(t, func() { runErr = ctx.Run(&c.globalCmd) })
	var ae firestore.AuthenticationError
	assert.ErrorAs(t, runErr, &ae)
	assert.Empty(t, out)

	ctx.FatalIfErrorf(runErr)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "fsdump: error: authentication failed")
}
