package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
)

// testEnv swaps the file system and output streams for the duration of a test
type testEnv struct {
	fs     afero.Fs
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		fs:     afero.NewMemMapFs(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	origFs, origStdout, origStderr := appFs, stdout, stderr
	appFs, stdout, stderr = env.fs, env.stdout, env.stderr
	t.Cleanup(func() {
		appFs, stdout, stderr = origFs, origStdout, origStderr
	})
	return env
}

// run executes the CLI and returns its exit code, clearing previous output
func (e *testEnv) run(args ...string) int {
	e.stdout.Reset()
	e.stderr.Reset()
	return execute(context.Background(), args)
}
