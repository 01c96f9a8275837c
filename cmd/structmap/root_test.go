package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixturePackages = []string{"-p", "struct-mapper/store", "-p", "struct-mapper/warehouse"}

// run executes the command tree with a temporary log file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-file", filepath.Join(t.TempDir(), "structmap.log")}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCmd_Help(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)

	for _, sub := range []string{"check", "paths", "fmt", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger := configureLogger(path, true)
	logger.Debug("hello", slog.String("k", "v"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello k=v")
}

func TestVersionCmd_Output(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)

	if out == "version: unknown\n" {
		return
	}

	assert.Contains(t, out, "tool version")
	assert.Contains(t, out, "go version")
}
